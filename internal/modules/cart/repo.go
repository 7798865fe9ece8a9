package cart

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chamseddine-glitch/sha/internal/modules/settings"
)

// Repo persists cart items keyed by the signed cart-cookie ID.
type Repo interface {
	Items(ctx context.Context, cartID string) ([]Item, error)
	Add(ctx context.Context, cartID string, it Item) error
	Remove(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
}

// ItemRow is the stored cart line; the product snapshot and the selected
// options are JSON blobs.
type ItemRow struct {
	ID          string         `gorm:"primaryKey;type:varchar(64)"`
	CartID      string         `gorm:"type:char(36);not null;index:ix_cart_items_cart_id"`
	ProductJSON datatypes.JSON `gorm:"not null"`
	Quantity    int            `gorm:"not null"`
	OptionsJSON datatypes.JSON `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"type:datetime(3);not null"`
}

func (ItemRow) TableName() string { return "cart_items" }

type GormRepo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *GormRepo { return &GormRepo{db: db} }

func (r *GormRepo) Items(ctx context.Context, cartID string) ([]Item, error) {
	var rows []ItemRow
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows, "cart_id = ?", cartID).Error
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		var p settings.Product
		if err := json.Unmarshal(row.ProductJSON, &p); err != nil {
			return nil, err
		}
		opts := map[string]string{}
		if len(row.OptionsJSON) > 0 {
			if err := json.Unmarshal(row.OptionsJSON, &opts); err != nil {
				return nil, err
			}
		}
		items = append(items, Item{
			ID:              row.ID,
			Product:         p,
			Quantity:        row.Quantity,
			SelectedOptions: opts,
		})
	}
	return items, nil
}

func (r *GormRepo) Add(ctx context.Context, cartID string, it Item) error {
	productBlob, err := json.Marshal(it.Product)
	if err != nil {
		return err
	}
	opts := it.SelectedOptions
	if opts == nil {
		opts = map[string]string{}
	}
	optsBlob, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	row := ItemRow{
		ID:          it.ID,
		CartID:      cartID,
		ProductJSON: productBlob,
		Quantity:    it.Quantity,
		OptionsJSON: optsBlob,
		CreatedAt:   time.Now(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *GormRepo) Remove(ctx context.Context, cartID, itemID string) error {
	// No-op when the item is already gone.
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&ItemRow{}).Error
}

func (r *GormRepo) Clear(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&ItemRow{}).Error
}
