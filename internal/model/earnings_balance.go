package model

import "time"

// EarningsBalance is a freelancer's withdrawable balance, credited when an
// order completes.
type EarningsBalance struct {
	UID       string    `gorm:"column:uid;primaryKey;size:128"`
	Amount    int64     `gorm:"column:amount;not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (EarningsBalance) TableName() string {
	return "earnings_balances"
}
