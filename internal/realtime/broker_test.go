package realtime

import (
	"testing"
	"time"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker()
	ch, unsubscribe := b.Subscribe(UserTopic("u1"))
	defer unsubscribe()

	b.Publish(UserTopic("u1"), Event{Type: EventMessageNew, Data: "hello"})

	select {
	case evt := <-ch:
		if evt.Type != EventMessageNew {
			t.Errorf("got event type %q, want %q", evt.Type, EventMessageNew)
		}
		if evt.Data != "hello" {
			t.Errorf("got data %v, want hello", evt.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBrokerTopicIsolation(t *testing.T) {
	b := NewBroker()
	ch, unsubscribe := b.Subscribe(UserTopic("u1"))
	defer unsubscribe()

	b.Publish(UserTopic("u2"), Event{Type: EventOrderUpdated})

	select {
	case evt := <-ch:
		t.Fatalf("received event %v for another user's topic", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	topic := UserTopic("u1")
	ch, unsubscribe := b.Subscribe(topic)
	if got := b.SubscriberCount(topic); got != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", got)
	}
	unsubscribe()
	if got := b.SubscriberCount(topic); got != 0 {
		t.Fatalf("SubscriberCount after unsubscribe = %d, want 0", got)
	}
	if _, open := <-ch; open {
		t.Error("channel still open after unsubscribe")
	}
	// calling twice is safe
	unsubscribe()
}

func TestBrokerSlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker()
	topic := UserTopic("u1")
	_, unsubscribe := b.Subscribe(topic)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			b.Publish(topic, Event{Type: EventNotificationNew, Data: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}
}

func TestBrokerMultipleSubscribers(t *testing.T) {
	b := NewBroker()
	topic := UserTopic("u1")
	ch1, unsub1 := b.Subscribe(topic)
	ch2, unsub2 := b.Subscribe(topic)
	defer unsub1()
	defer unsub2()

	b.Publish(topic, Event{Type: EventConversationUpdated})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case evt := <-ch:
			if evt.Type != EventConversationUpdated {
				t.Errorf("subscriber %d: got %q, want %q", i, evt.Type, EventConversationUpdated)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: timed out", i)
		}
	}
}
