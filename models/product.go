package models

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:100;index;not null" json:"name"`
	Price       int    `gorm:"not null" json:"price"` // minor currency units (cents)
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:50;index" json:"category"`
	Stock       int    `json:"stock"`
	ImageURL    string `gorm:"size:255" json:"image_url"`

	// Owner must exist before a product can be created; see services/identity.
	OwnerID uint `gorm:"index;not null" json:"owner_id"`
}
