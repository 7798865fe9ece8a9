package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DraftRepo persists one in-progress settings document per browser profile.
type DraftRepo interface {
	Get(ctx context.Context, profileID string) (*StoreSettings, error)
	Put(ctx context.Context, profileID string, s StoreSettings) error
	Clear(ctx context.Context, profileID string) error
}

// Draft is the stored draft row: one JSON blob per profile.
type Draft struct {
	ProfileID string         `gorm:"primaryKey;type:char(36)"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"type:datetime(3);not null"`
}

func (Draft) TableName() string { return "setting_drafts" }

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Get(ctx context.Context, profileID string) (*StoreSettings, error) {
	var d Draft
	err := r.db.WithContext(ctx).First(&d, "profile_id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s StoreSettings
	if err := json.Unmarshal(d.Data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Put(ctx context.Context, profileID string, s StoreSettings) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	d := Draft{ProfileID: profileID, Data: blob, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Save(&d).Error
}

func (r *Repo) Clear(ctx context.Context, profileID string) error {
	return r.db.WithContext(ctx).Delete(&Draft{}, "profile_id = ?", profileID).Error
}
