package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is a database-backed admin session.
type Session struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	Username   string    `gorm:"type:varchar(190);not null"`
	ExpiresAt  time.Time `gorm:"type:datetime(3);not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
	LastSeenAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Session) TableName() string { return "sessions" }

// SessionStore creates, validates, and deletes admin sessions.
type SessionStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionStore(db *gorm.DB, ttl time.Duration) *SessionStore {
	return &SessionStore{db: db, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, username string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		Username:   username,
		ExpiresAt:  now.Add(s.ttl),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the session when it exists and has not expired, nil otherwise.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, time.Now()).
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&Session{}, "id = ?", id).Error
}
