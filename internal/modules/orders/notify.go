package orders

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeenRepo persists how many orders an admin profile has acknowledged.
type SeenRepo interface {
	SeenCount(ctx context.Context, profileID string) (int, error)
	SetSeenCount(ctx context.Context, profileID string, n int) error
}

// SeenMarker stores the acknowledged-order counter per admin profile.
type SeenMarker struct {
	ProfileID string    `gorm:"primaryKey;type:char(36)"`
	SeenCount int       `gorm:"not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (SeenMarker) TableName() string { return "seen_markers" }

type GormSeenRepo struct{ db *gorm.DB }

func NewSeenRepo(db *gorm.DB) *GormSeenRepo { return &GormSeenRepo{db: db} }

func (r *GormSeenRepo) SeenCount(ctx context.Context, profileID string) (int, error) {
	var m SeenMarker
	err := r.db.WithContext(ctx).First(&m, "profile_id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return m.SeenCount, nil
}

func (r *GormSeenRepo) SetSeenCount(ctx context.Context, profileID string, n int) error {
	m := SeenMarker{ProfileID: profileID, SeenCount: n, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"seen_count", "updated_at"}),
		}).
		Create(&m).Error
}

// Tracker derives the new-order badge from a counter rather than per-order
// read flags: unseen = total - seen, floored at zero. Clearing the order list
// makes every profile's marker overshoot; the floor absorbs that until the
// next MarkAllSeen.
type Tracker struct {
	seen SeenRepo
}

func NewTracker(seen SeenRepo) *Tracker { return &Tracker{seen: seen} }

// UnseenCount reports how many orders arrived since the profile last looked.
func (t *Tracker) UnseenCount(ctx context.Context, profileID string, total int) (int, error) {
	seen, err := t.seen.SeenCount(ctx, profileID)
	if err != nil {
		return 0, err
	}
	n := total - seen
	if n < 0 {
		n = 0
	}
	return n, nil
}

// MarkAllSeen records the current total as acknowledged.
func (t *Tracker) MarkAllSeen(ctx context.Context, profileID string, total int) error {
	return t.seen.SetSeenCount(ctx, profileID, total)
}

// Reset zeroes the marker, used when the order list itself is cleared.
func (t *Tracker) Reset(ctx context.Context, profileID string) error {
	return t.seen.SetSeenCount(ctx, profileID, 0)
}
