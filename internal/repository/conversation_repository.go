package repository

import (
	"context"
	"time"

	"github.com/xlance-app/xlance-backend/internal/model"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	FindOrCreate(ctx context.Context, uidA, uidB string) (*model.Conversation, error)
	FindByUser(ctx context.Context, uid string) ([]model.Conversation, error)
	FindByID(ctx context.Context, id uint64) (*model.Conversation, error)
	CreateMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, convID uint64) ([]model.Message, error)
	SetPreview(ctx context.Context, convID uint64, preview string, at time.Time) error
	IncrementUnread(ctx context.Context, convID uint64, uid string) error
	ResetUnread(ctx context.Context, convID uint64, uid string) error
	UnreadCounts(ctx context.Context, uid string, convIDs []uint64) (map[uint64]int64, error)
	SetDB(db *gorm.DB)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func (r *conversationRepository) FindOrCreate(ctx context.Context, uidA, uidB string) (*model.Conversation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	a, b := model.OrderPair(uidA, uidB)
	cv := model.Conversation{UserAUID: a, UserBUID: b}
	if err := r.db.WithContext(ctx).
		Where("user_a_uid = ? AND user_b_uid = ?", a, b).
		FirstOrCreate(&cv).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *conversationRepository) FindByUser(ctx context.Context, uid string) ([]model.Conversation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_a_uid = ? OR user_b_uid = ?", uid, uid).
		Order("last_message_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *conversationRepository) FindByID(ctx context.Context, id uint64) (*model.Conversation, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var cv model.Conversation
	if err := r.db.WithContext(ctx).First(&cv, id).Error; err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *conversationRepository) CreateMessage(ctx context.Context, msg *model.Message) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *conversationRepository) ListMessages(ctx context.Context, convID uint64) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *conversationRepository) SetPreview(ctx context.Context, convID uint64, preview string, at time.Time) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("id = ?", convID).
		Updates(map[string]interface{}{
			"last_message":    preview,
			"last_message_at": at,
		}).Error
}

// IncrementUnread bumps the participant's counter atomically, creating the
// state row on first use.
func (r *conversationRepository) IncrementUnread(ctx context.Context, convID uint64, uid string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Model(&model.ConversationState{}).
		Where("conversation_id = ? AND uid = ?", convID, uid).
		Update("unread_count", gorm.Expr("unread_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.db.WithContext(ctx).Create(&model.ConversationState{
			ConversationID: convID,
			UID:            uid,
			UnreadCount:    1,
		}).Error
	}
	return nil
}

func (r *conversationRepository) ResetUnread(ctx context.Context, convID uint64, uid string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	now := time.Now()
	st := model.ConversationState{ConversationID: convID, UID: uid}
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND uid = ?", convID, uid).
		FirstOrCreate(&st).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.ConversationState{}).
		Where("conversation_id = ? AND uid = ?", convID, uid).
		Updates(map[string]interface{}{
			"unread_count": 0,
			"last_read_at": now,
		}).Error
}

func (r *conversationRepository) UnreadCounts(ctx context.Context, uid string, convIDs []uint64) (map[uint64]int64, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	counts := make(map[uint64]int64, len(convIDs))
	if len(convIDs) == 0 {
		return counts, nil
	}
	var states []model.ConversationState
	if err := r.db.WithContext(ctx).
		Where("uid = ? AND conversation_id IN ?", uid, convIDs).
		Find(&states).Error; err != nil {
		return nil, err
	}
	for _, st := range states {
		counts[st.ConversationID] = st.UnreadCount
	}
	return counts, nil
}
