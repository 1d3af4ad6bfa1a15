package model

import "time"

type GigStatus string

const (
	GigStatusActive GigStatus = "active"
	GigStatusPaused GigStatus = "paused"
	GigStatusDraft  GigStatus = "draft"
)

type Gig struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	SellerUID    string    `gorm:"column:seller_uid;size:128;index;not null"`
	Title        string    `gorm:"size:120;not null"`
	Description  string    `gorm:"type:text;not null"`
	Price        int64     `gorm:"not null"`
	DeliveryDays int       `gorm:"column:delivery_days;not null"`
	Category     string    `gorm:"size:120;index;not null"`
	Status       GigStatus `gorm:"size:32;index;not null"`
	Views        int64     `gorm:"not null;default:0"`
	ImageURL     *string   `gorm:"column:image_url;size:512"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Gig) TableName() string {
	return "gigs"
}
