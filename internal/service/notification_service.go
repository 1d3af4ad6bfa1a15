package service

import (
	"context"
	"log"
	"time"

	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/realtime"
	"github.com/xlance-app/xlance-backend/internal/repository"
)

const (
	NotifTypeOrderPlaced    = "order_placed"
	NotifTypeOrderDelivered = "order_delivered"
	NotifTypeOrderCompleted = "order_completed"
	NotifTypeOrderCancelled = "order_cancelled"
	NotifTypeMessageNew     = "message_new"
)

type NotificationService interface {
	Notify(ctx context.Context, n *model.Notification)
	List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error)
	UnreadCount(ctx context.Context, userUID string) (int64, error)
	MarkAllRead(ctx context.Context, userUID string) error
}

type notificationService struct {
	repo   repository.NotificationRepository
	broker *realtime.Broker
}

func NewNotificationService(repo repository.NotificationRepository, broker *realtime.Broker) NotificationService {
	return &notificationService{repo: repo, broker: broker}
}

// withShortDeadline caps best-effort writes so they cannot stall the flow
// that triggered them.
func withShortDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 2*time.Second)
}

// Notify is best-effort: a failed write is logged, never returned, so the
// order or message that triggered it still succeeds.
func (s *notificationService) Notify(ctx context.Context, n *model.Notification) {
	if n == nil || n.UserUID == "" || n.Type == "" {
		return
	}
	ctx, cancel := withShortDeadline(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notify %s (%s): %v", n.UserUID, n.Type, err)
		return
	}
	s.broker.Publish(realtime.UserTopic(n.UserUID), realtime.Event{
		Type: realtime.EventNotificationNew,
		Data: n,
	})
}

func (s *notificationService) List(ctx context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	if userUID == "" {
		return nil, 0, nil
	}
	list, err := s.repo.ListByUser(ctx, userUID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	cnt, err := s.repo.CountUnread(ctx, userUID)
	if err != nil {
		return list, 0, err
	}
	return list, cnt, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userUID string) (int64, error) {
	if userUID == "" {
		return 0, nil
	}
	return s.repo.CountUnread(ctx, userUID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userUID string) error {
	if userUID == "" {
		return nil
	}
	return s.repo.MarkAllRead(ctx, userUID)
}
