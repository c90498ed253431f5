package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/SanketJawali/tinker-store-api/models"
)

type Products struct {
	db *gorm.DB
}

// Search returns one page of products. When q is set it matches
// case-insensitively as a substring of name or description.
func (s *Products) Search(ctx context.Context, q string, offset, limit int) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})
	if q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	products := []models.Product{}
	if err := query.Offset(offset).Limit(limit).Order("id").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func (s *Products) Create(ctx context.Context, p *models.Product) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *Products) ByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *Products) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *Products) All(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}
