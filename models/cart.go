package models

import "time"

// CartEntry is one live (user, product) line in a cart. The composite unique
// index enforces at most one live entry per pair; rows never persist with
// quantity <= 0 (the reconciler deletes them instead).
type CartEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"cart_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartLine is a cart entry joined with the product fields the storefront
// renders. Read-only projection, never written back.
type CartLine struct {
	CartID    uint   `json:"cart_id"`
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	ImageURL  string `json:"image_url"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
}
