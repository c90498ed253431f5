// Package store provides the GORM-backed implementations of the persistence
// interfaces declared by the service packages. It is the only package that
// talks to the database, and the only place GORM errors are translated into
// the shared models error values.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SanketJawali/tinker-store-api/models"
)

type Stores struct {
	Users    *Users
	Products *Products
	Carts    *Carts
	Reviews  *Reviews
	Orders   *Orders
}

func New(db *gorm.DB) *Stores {
	return &Stores{
		Users:    &Users{db: db},
		Products: &Products{db: db},
		Carts:    &Carts{db: db},
		Reviews:  &Reviews{db: db},
		Orders:   &Orders{db: db},
	}
}

// translate maps GORM errors onto the models sentinels. Requires the gorm
// TranslateError option so driver unique violations arrive as
// gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ErrDuplicate
	default:
		return fmt.Errorf("store: %w", err)
	}
}
