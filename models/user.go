package models

type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"size:100;index" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
}
