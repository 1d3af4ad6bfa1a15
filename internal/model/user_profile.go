package model

import "time"

type UserProfile struct {
	UID         string    `gorm:"column:uid;primaryKey;size:128"`
	DisplayName string    `gorm:"column:display_name;size:120"`
	Bio         string    `gorm:"column:bio;type:text"`
	Skills      string    `gorm:"column:skills;size:512"` // comma list
	HourlyRate  int64     `gorm:"column:hourly_rate"`
	AvatarURL   *string   `gorm:"column:avatar_url;size:512"`
	Roles       string    `gorm:"column:roles;size:64"` // comma list, see RoleSet
	Onboarded   bool      `gorm:"column:onboarded;not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) RoleSet() RoleSet {
	return RoleSetFromColumn(p.Roles)
}
