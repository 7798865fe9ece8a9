package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Remote  RemoteConfig
	Admin   AdminConfig
	Cookie  CookieConfig
	SMTP    SMTPConfig
	Storage StorageConfig
	Gen     GenConfig
}

type ServerConfig struct {
	Addr    string
	Env     string
	BaseURL string
}

type DBConfig struct {
	DSN string
}

// RemoteConfig points at the shared JSON document store. SettingsBin holds the
// published StoreSettings document, OrdersBin the placed-order list.
type RemoteConfig struct {
	BaseURL     string
	MasterKey   string
	SettingsBin string
	OrdersBin   string
	Timeout     time.Duration
}

type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt
	SessionTTL   time.Duration
	NotifyEmail  string // optional: new-order notifications
}

type CookieConfig struct {
	Secret  string
	Secure  bool
	Session string
	Cart    string
	Profile string
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	From          string
	FromName      string
	TLSMode       string // "", "tls", "starttls"
	SkipVerifyTLS bool
}

type StorageConfig struct {
	Driver       string // local|s3
	LocalDir     string
	LocalURL     string
	S3Region     string
	S3Bucket     string
	S3Prefix     string
	S3PublicBase string
}

type GenConfig struct {
	Endpoint string // text-generation collaborator; empty disables it
	APIKey   string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	if err := viper.ReadInConfig(); err != nil {
		// .env is optional; real env vars win in prod
		viper.Reset()
	}
	viper.AutomaticEnv()

	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("APP_ENV", "dev")
	viper.SetDefault("REMOTE_TIMEOUT", "15s")
	viper.SetDefault("ADMIN_SESSION_TTL", "12h")
	viper.SetDefault("COOKIE_SESSION_NAME", "rs_session")
	viper.SetDefault("COOKIE_CART_NAME", "rs_cart")
	viper.SetDefault("COOKIE_PROFILE_NAME", "rs_profile")
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("LOCAL_UPLOAD_DIR", "./storage/uploads")
	viper.SetDefault("LOCAL_UPLOAD_URL_PREFIX", "/uploads")
	viper.SetDefault("S3_PREFIX", "uploads")

	cfg := &Config{
		Server: ServerConfig{
			Addr:    viper.GetString("HTTP_ADDR"),
			Env:     viper.GetString("APP_ENV"),
			BaseURL: viper.GetString("BASE_URL"),
		},
		DB: DBConfig{
			DSN: viper.GetString("DB_DSN"),
		},
		Remote: RemoteConfig{
			BaseURL:     viper.GetString("REMOTE_BASE_URL"),
			MasterKey:   viper.GetString("REMOTE_MASTER_KEY"),
			SettingsBin: viper.GetString("REMOTE_SETTINGS_BIN"),
			OrdersBin:   viper.GetString("REMOTE_ORDERS_BIN"),
			Timeout:     viper.GetDuration("REMOTE_TIMEOUT"),
		},
		Admin: AdminConfig{
			Username:     viper.GetString("ADMIN_USERNAME"),
			PasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
			SessionTTL:   viper.GetDuration("ADMIN_SESSION_TTL"),
			NotifyEmail:  viper.GetString("ADMIN_NOTIFY_EMAIL"),
		},
		Cookie: CookieConfig{
			Secret:  viper.GetString("COOKIE_SECRET"),
			Secure:  viper.GetBool("COOKIE_SECURE"),
			Session: viper.GetString("COOKIE_SESSION_NAME"),
			Cart:    viper.GetString("COOKIE_CART_NAME"),
			Profile: viper.GetString("COOKIE_PROFILE_NAME"),
		},
		SMTP: SMTPConfig{
			Host:          viper.GetString("SMTP_HOST"),
			Port:          viper.GetString("SMTP_PORT"),
			User:          viper.GetString("SMTP_USER"),
			Pass:          viper.GetString("SMTP_PASS"),
			From:          viper.GetString("SMTP_FROM"),
			FromName:      viper.GetString("SMTP_FROM_NAME"),
			TLSMode:       viper.GetString("SMTP_TLS_MODE"),
			SkipVerifyTLS: viper.GetBool("SMTP_SKIP_VERIFY_TLS"),
		},
		Storage: StorageConfig{
			Driver:       viper.GetString("STORAGE_DRIVER"),
			LocalDir:     viper.GetString("LOCAL_UPLOAD_DIR"),
			LocalURL:     viper.GetString("LOCAL_UPLOAD_URL_PREFIX"),
			S3Region:     viper.GetString("S3_REGION"),
			S3Bucket:     viper.GetString("S3_BUCKET"),
			S3Prefix:     viper.GetString("S3_PREFIX"),
			S3PublicBase: viper.GetString("S3_PUBLIC_BASE_URL"),
		},
		Gen: GenConfig{
			Endpoint: viper.GetString("GEN_ENDPOINT"),
			APIKey:   viper.GetString("GEN_API_KEY"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DB.DSN == "" {
		return fmt.Errorf("config: DB_DSN is required")
	}
	if c.Remote.BaseURL == "" || c.Remote.SettingsBin == "" || c.Remote.OrdersBin == "" {
		return fmt.Errorf("config: REMOTE_BASE_URL, REMOTE_SETTINGS_BIN and REMOTE_ORDERS_BIN are required")
	}
	if c.Cookie.Secret == "" {
		return fmt.Errorf("config: COOKIE_SECRET is required")
	}
	if c.Admin.Username == "" || c.Admin.PasswordHash == "" {
		return fmt.Errorf("config: ADMIN_USERNAME and ADMIN_PASSWORD_HASH are required")
	}
	return nil
}
