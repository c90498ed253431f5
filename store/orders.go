package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/SanketJawali/tinker-store-api/models"
)

type Orders struct {
	db *gorm.DB
}

// Place inserts the order with its items and clears the buyer's cart in a
// single transaction, so a failed insert leaves the cart untouched.
func (s *Orders) Place(ctx context.Context, order *models.Order) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", order.UserID).Delete(&models.CartEntry{}).Error
	})
	return translate(err)
}

// ForUser returns the user's orders, newest first, items included.
func (s *Orders) ForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err)
	}
	return orders, nil
}
