package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/SanketJawali/tinker-store-api/models"
)

type Reviews struct {
	db *gorm.DB
}

func (s *Reviews) Create(ctx context.Context, r *models.Review) error {
	return translate(s.db.WithContext(ctx).Create(r).Error)
}

func (s *Reviews) ListForProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, translate(err)
	}
	return reviews, nil
}
