package service

import (
	"context"
	"errors"
	"time"

	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/realtime"
	"github.com/xlance-app/xlance-backend/internal/repository"
	"gorm.io/gorm"
)

const previewMax = 120

// ConversationView is the list row shape consumed by the inbox: the peer's
// identity resolved, plus preview and unread badge.
type ConversationView struct {
	ID              uint64     `json:"id"`
	OtherUID        string     `json:"otherUid"`
	OtherName       string     `json:"otherName"`
	OtherAvatar     *string    `json:"otherAvatar,omitempty"`
	LastMessage     string     `json:"lastMessage"`
	LastMessageTime *time.Time `json:"lastMessageTime"`
	UnreadCount     int64      `json:"unreadCount"`
}

type ConversationService interface {
	Start(ctx context.Context, uid, otherUID string) (*model.Conversation, error)
	ListByUser(ctx context.Context, uid string) ([]ConversationView, error)
	Get(ctx context.Context, convID uint64, uid string) (*model.Conversation, error)
	ListMessages(ctx context.Context, convID uint64, uid string) ([]model.Message, error)
	SendMessage(ctx context.Context, convID uint64, uid, body string) (*model.Message, error)
	MarkRead(ctx context.Context, convID uint64, uid string) error
}

type conversationService struct {
	convRepo    repository.ConversationRepository
	profileRepo repository.ProfileRepository
	notifSvc    NotificationService
	broker      *realtime.Broker
}

func NewConversationService(convRepo repository.ConversationRepository, profileRepo repository.ProfileRepository, notifSvc NotificationService, broker *realtime.Broker) ConversationService {
	return &conversationService{convRepo: convRepo, profileRepo: profileRepo, notifSvc: notifSvc, broker: broker}
}

// Start finds or creates the thread between two users. The participant pair
// is stored ordered and uniquely indexed, so concurrent starts converge on
// one row.
func (s *conversationService) Start(ctx context.Context, uid, otherUID string) (*model.Conversation, error) {
	if uid == "" || otherUID == "" {
		return nil, errors.New("both participants are required")
	}
	if uid == otherUID {
		return nil, errors.New("cannot message yourself")
	}
	return s.convRepo.FindOrCreate(ctx, uid, otherUID)
}

func (s *conversationService) ListByUser(ctx context.Context, uid string) ([]ConversationView, error) {
	convs, err := s.convRepo.FindByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(convs))
	for _, cv := range convs {
		ids = append(ids, cv.ID)
	}
	unread, err := s.convRepo.UnreadCounts(ctx, uid, ids)
	if err != nil {
		return nil, err
	}
	views := make([]ConversationView, 0, len(convs))
	for _, cv := range convs {
		other := cv.OtherParticipant(uid)
		view := ConversationView{
			ID:              cv.ID,
			OtherUID:        other,
			OtherName:       other,
			LastMessage:     cv.LastMessage,
			LastMessageTime: cv.LastMessageAt,
			UnreadCount:     unread[cv.ID],
		}
		if p, err := s.profileRepo.FindByUID(ctx, other); err == nil {
			if p.DisplayName != "" {
				view.OtherName = p.DisplayName
			}
			view.OtherAvatar = p.AvatarURL
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *conversationService) Get(ctx context.Context, convID uint64, uid string) (*model.Conversation, error) {
	cv, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !cv.HasParticipant(uid) {
		return nil, ErrForbidden
	}
	return cv, nil
}

func (s *conversationService) ListMessages(ctx context.Context, convID uint64, uid string) ([]model.Message, error) {
	if _, err := s.Get(ctx, convID, uid); err != nil {
		return nil, err
	}
	return s.convRepo.ListMessages(ctx, convID)
}

func preview(body string) string {
	if len(body) > previewMax {
		return body[:previewMax]
	}
	return body
}

func (s *conversationService) SendMessage(ctx context.Context, convID uint64, uid, body string) (*model.Message, error) {
	if body == "" {
		return nil, errors.New("body is required")
	}
	cv, err := s.Get(ctx, convID, uid)
	if err != nil {
		return nil, err
	}
	msg := &model.Message{
		ConversationID: convID,
		SenderUID:      uid,
		Body:           body,
	}
	if err := s.convRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.afterMessage(ctx, cv, msg, true)
	return msg, nil
}

// afterMessage runs the fan-out shared by user and system messages: preview,
// peer unread bump, live events, and (for user messages) a notification.
func (s *conversationService) afterMessage(ctx context.Context, cv *model.Conversation, msg *model.Message, notifyPeer bool) {
	other := cv.OtherParticipant(msg.SenderUID)
	at := msg.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	_ = s.convRepo.SetPreview(ctx, cv.ID, preview(msg.Body), at)
	_ = s.convRepo.IncrementUnread(ctx, cv.ID, other)

	s.broker.Publish(realtime.UserTopic(other), realtime.Event{
		Type: realtime.EventMessageNew,
		Data: msg,
	})
	for _, uid := range []string{cv.UserAUID, cv.UserBUID} {
		s.broker.Publish(realtime.UserTopic(uid), realtime.Event{
			Type: realtime.EventConversationUpdated,
			Data: map[string]interface{}{"conversationId": cv.ID},
		})
	}

	if notifyPeer {
		convID := cv.ID
		s.notifSvc.Notify(ctx, &model.Notification{
			UserUID:        other,
			Type:           NotifTypeMessageNew,
			Title:          "New message",
			Body:           preview(msg.Body),
			Link:           "/messages",
			ConversationID: &convID,
		})
	}
}

// MarkRead zeroes the caller's unread counter. A message arriving between
// open and mark-read can be swallowed by the reset; the original client
// behaved the same way and the next message restores the badge.
func (s *conversationService) MarkRead(ctx context.Context, convID uint64, uid string) error {
	if _, err := s.Get(ctx, convID, uid); err != nil {
		return err
	}
	return s.convRepo.ResetUnread(ctx, convID, uid)
}
