package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/SanketJawali/tinker-store-api/models"
)

type Carts struct {
	db *gorm.DB
}

// ByID fetches an entry by id, scoped to the owning user and product so a
// foreign hint can never resolve to another user's row.
func (s *Carts) ByID(ctx context.Context, id, userID, productID uint) (*models.CartEntry, error) {
	var entry models.CartEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND product_id = ?", id, userID, productID).
		First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (s *Carts) ByUserProduct(ctx context.Context, userID, productID uint) (*models.CartEntry, error) {
	var entry models.CartEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (s *Carts) Create(ctx context.Context, e *models.CartEntry) error {
	return translate(s.db.WithContext(ctx).Create(e).Error)
}

func (s *Carts) SaveQuantity(ctx context.Context, e *models.CartEntry) error {
	result := s.db.WithContext(ctx).
		Model(&models.CartEntry{}).
		Where("id = ?", e.ID).
		Update("quantity", e.Quantity)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Carts) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.CartEntry{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListForUser joins entries with product display fields for the storefront.
func (s *Carts) ListForUser(ctx context.Context, userID uint) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	err := s.db.WithContext(ctx).
		Table("cart_entries").
		Select(`cart_entries.id AS cart_id,
			cart_entries.product_id,
			products.name,
			products.price,
			products.image_url,
			products.category,
			cart_entries.quantity`).
		Joins("JOIN products ON products.id = cart_entries.product_id").
		Where("cart_entries.user_id = ?", userID).
		Order("cart_entries.id").
		Scan(&lines).Error
	if err != nil {
		return nil, translate(err)
	}
	return lines, nil
}
