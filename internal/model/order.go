package model

import "time"

type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID             uint64      `gorm:"primaryKey;autoIncrement"`
	GigID          uint64      `gorm:"column:gig_id;index;not null"`
	BuyerUID       string      `gorm:"column:buyer_uid;size:128;index;not null"`
	SellerUID      string      `gorm:"column:seller_uid;size:128;index;not null"`
	ConversationID uint64      `gorm:"column:conversation_id;index"`
	Category       string      `gorm:"size:120"` // snapshot of the gig category at purchase time
	Price          int64       `gorm:"not null"`
	ServiceFee     int64       `gorm:"column:service_fee;not null"`
	Total          int64       `gorm:"not null"`
	Status         OrderStatus `gorm:"size:32;index;not null"`
	Requirement    string      `gorm:"type:text"`
	DeliveredAt    *time.Time  `gorm:"column:delivered_at"`
	CompletedAt    *time.Time  `gorm:"column:completed_at"`
	CancelledAt    *time.Time  `gorm:"column:cancelled_at"`
	CreatedAt      time.Time   `gorm:"autoCreateTime"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
