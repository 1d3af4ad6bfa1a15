package realtime

import "sync"

// Event is a typed payload pushed to live subscribers.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

const (
	EventMessageNew          = "message_new"
	EventConversationUpdated = "conversation_updated"
	EventNotificationNew     = "notification_new"
	EventOrderUpdated        = "order_updated"
)

// UserTopic is the per-user event topic; every event relevant to a user is
// published there.
func UserTopic(uid string) string {
	return "user:" + uid
}

// Broker is an in-process publish/subscribe hub. Subscribe returns the event
// channel together with an unsubscribe func; callers must invoke it when
// done. Publish never blocks: a subscriber whose buffer is full misses the
// event.
type Broker struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]chan Event
}

const subscriberBuffer = 64

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[uint64]chan Event)}
}

func (b *Broker) Subscribe(topic string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[uint64]chan Event)
	}
	b.subs[topic][id] = ch
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			if subs, ok := b.subs[topic]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(b.subs, topic)
				}
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

func (b *Broker) Publish(topic string, evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- evt:
		default:
			// subscriber too slow, skip
		}
	}
}

// SubscriberCount reports live subscriptions on a topic.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
