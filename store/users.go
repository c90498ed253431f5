package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/SanketJawali/tinker-store-api/models"
)

type Users struct {
	db *gorm.DB
}

func (s *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Users) Create(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}
