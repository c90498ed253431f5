package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	// Snapshot of customer info at time of purchase
	CustomerName    string `gorm:"size:100" json:"customer_name"`
	CustomerAddress string `gorm:"type:text" json:"customer_address"`
	CustomerPhone   string `gorm:"size:20" json:"customer_phone"`
	PaymentMethod   string `gorm:"size:50" json:"payment_method"`

	TotalAmount int         `gorm:"not null" json:"total_amount"` // minor currency units
	Status      OrderStatus `gorm:"size:50;default:pending" json:"status"`
	Reference   string      `gorm:"size:64;uniqueIndex" json:"reference"`
	CreatedAt   time.Time   `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
	// Snapshot of price
	PriceAtPurchase int `gorm:"not null" json:"price_at_purchase"`
}
