package model

import "time"

// Conversation is a two-participant thread. Participants are stored in
// lexical order so the (user_a, user_b) unique index dedupes regardless of
// who opened the thread.
type Conversation struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserAUID      string     `gorm:"column:user_a_uid;size:128;uniqueIndex:uk_conv_pair;index" json:"userAUid"`
	UserBUID      string     `gorm:"column:user_b_uid;size:128;uniqueIndex:uk_conv_pair;index" json:"userBUid"`
	LastMessage   string     `gorm:"column:last_message;size:512" json:"lastMessage"`
	LastMessageAt *time.Time `gorm:"column:last_message_at" json:"lastMessageAt"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) HasParticipant(uid string) bool {
	return c.UserAUID == uid || c.UserBUID == uid
}

// OtherParticipant returns the peer of uid, or "" if uid is not a
// participant.
func (c *Conversation) OtherParticipant(uid string) string {
	switch uid {
	case c.UserAUID:
		return c.UserBUID
	case c.UserBUID:
		return c.UserAUID
	}
	return ""
}

// OrderPair normalizes two uids into storage order.
func OrderPair(x, y string) (string, string) {
	if x > y {
		return y, x
	}
	return x, y
}
