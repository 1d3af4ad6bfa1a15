package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/realtime"
)

func TestNotifyPublishesAndStores(t *testing.T) {
	repo := newFakeNotifRepo()
	broker := realtime.NewBroker()
	svc := NewNotificationService(repo, broker)
	ctx := context.Background()

	ch, unsubscribe := broker.Subscribe(realtime.UserTopic("u1"))
	defer unsubscribe()

	svc.Notify(ctx, &model.Notification{UserUID: "u1", Type: NotifTypeOrderPlaced, Title: "New order"})

	list, unread, err := svc.List(ctx, "u1", true, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), unread)

	select {
	case evt := <-ch:
		assert.Equal(t, realtime.EventNotificationNew, evt.Type)
	default:
		t.Fatal("expected a live event for the notification")
	}
}

func TestNotifyBestEffort(t *testing.T) {
	repo := newFakeNotifRepo()
	repo.failCreate = true
	broker := realtime.NewBroker()
	svc := NewNotificationService(repo, broker)
	ctx := context.Background()

	ch, unsubscribe := broker.Subscribe(realtime.UserTopic("u1"))
	defer unsubscribe()

	// a failed write is swallowed and nothing is published
	svc.Notify(ctx, &model.Notification{UserUID: "u1", Type: NotifTypeMessageNew})
	assert.Empty(t, ch)

	// malformed notifications are dropped outright
	svc.Notify(ctx, nil)
	svc.Notify(ctx, &model.Notification{Type: NotifTypeMessageNew})
	svc.Notify(ctx, &model.Notification{UserUID: "u1"})
}

func TestNotificationsMarkAllRead(t *testing.T) {
	repo := newFakeNotifRepo()
	broker := realtime.NewBroker()
	svc := NewNotificationService(repo, broker)
	ctx := context.Background()

	svc.Notify(ctx, &model.Notification{UserUID: "u1", Type: NotifTypeOrderPlaced})
	svc.Notify(ctx, &model.Notification{UserUID: "u1", Type: NotifTypeMessageNew})
	svc.Notify(ctx, &model.Notification{UserUID: "u2", Type: NotifTypeMessageNew})

	cnt, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)

	require.NoError(t, svc.MarkAllRead(ctx, "u1"))

	cnt, err = svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cnt)

	// the other user's unread pile is untouched
	cnt, err = svc.UnreadCount(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	list, unread, err := svc.List(ctx, "u1", false, 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(0), unread)
}
