package service

import (
	"context"
	"strconv"
	"time"

	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes shared by the service tests.

type fakeGigRepo struct {
	gigs   map[uint64]*model.Gig
	nextID uint64
}

func newFakeGigRepo() *fakeGigRepo {
	return &fakeGigRepo{gigs: make(map[uint64]*model.Gig)}
}

func (f *fakeGigRepo) Create(_ context.Context, g *model.Gig) error {
	f.nextID++
	g.ID = f.nextID
	g.CreatedAt = time.Now()
	cp := *g
	f.gigs[g.ID] = &cp
	return nil
}

func (f *fakeGigRepo) FindByID(_ context.Context, id uint64) (*model.Gig, error) {
	g, ok := f.gigs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGigRepo) List(_ context.Context, flt repository.GigFilter) ([]model.Gig, int64, error) {
	var out []model.Gig
	for _, g := range f.gigs {
		if flt.Status != "" && g.Status != flt.Status {
			continue
		}
		if flt.Category != "" && g.Category != flt.Category {
			continue
		}
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (f *fakeGigRepo) ListBySeller(_ context.Context, sellerUID string) ([]model.Gig, error) {
	var out []model.Gig
	for _, g := range f.gigs {
		if g.SellerUID == sellerUID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGigRepo) Update(_ context.Context, g *model.Gig) error {
	cp := *g
	f.gigs[g.ID] = &cp
	return nil
}

func (f *fakeGigRepo) Delete(_ context.Context, id uint64) error {
	delete(f.gigs, id)
	return nil
}

func (f *fakeGigRepo) IncrementViews(_ context.Context, id uint64) error {
	g, ok := f.gigs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	g.Views++
	return nil
}

func (f *fakeGigRepo) SetDB(*gorm.DB) {}

type fakeOrderRepo struct {
	orders map[uint64]*model.Order
	nextID uint64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint64]*model.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *model.Order) error {
	f.nextID++
	o.ID = f.nextID
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint64) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, o *model.Order) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) ListByBuyer(_ context.Context, buyerUID string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.BuyerUID == buyerUID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListBySeller(_ context.Context, sellerUID string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.SellerUID == sellerUID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) MarkCompletedIfDelivered(_ context.Context, id uint64, buyerUID string) (int64, error) {
	o, ok := f.orders[id]
	if !ok || o.BuyerUID != buyerUID || o.Status != model.OrderStatusDelivered {
		return 0, nil
	}
	now := time.Now()
	o.Status = model.OrderStatusCompleted
	o.CompletedAt = &now
	return 1, nil
}

func (f *fakeOrderRepo) SetDB(*gorm.DB) {}

type fakeConvRepo struct {
	convs    map[uint64]*model.Conversation
	messages map[uint64][]model.Message
	unread   map[string]int64 // "convID/uid"
	nextID   uint64
	nextMsg  uint64
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{
		convs:    make(map[uint64]*model.Conversation),
		messages: make(map[uint64][]model.Message),
		unread:   make(map[string]int64),
	}
}

func unreadKey(convID uint64, uid string) string {
	return strconv.FormatUint(convID, 10) + "/" + uid
}

func (f *fakeConvRepo) FindOrCreate(_ context.Context, uidA, uidB string) (*model.Conversation, error) {
	a, b := model.OrderPair(uidA, uidB)
	for _, cv := range f.convs {
		if cv.UserAUID == a && cv.UserBUID == b {
			cp := *cv
			return &cp, nil
		}
	}
	f.nextID++
	cv := &model.Conversation{ID: f.nextID, UserAUID: a, UserBUID: b, CreatedAt: time.Now()}
	f.convs[cv.ID] = cv
	cp := *cv
	return &cp, nil
}

func (f *fakeConvRepo) FindByUser(_ context.Context, uid string) ([]model.Conversation, error) {
	var out []model.Conversation
	for _, cv := range f.convs {
		if cv.HasParticipant(uid) {
			out = append(out, *cv)
		}
	}
	return out, nil
}

func (f *fakeConvRepo) FindByID(_ context.Context, id uint64) (*model.Conversation, error) {
	cv, ok := f.convs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *cv
	return &cp, nil
}

func (f *fakeConvRepo) CreateMessage(_ context.Context, msg *model.Message) error {
	f.nextMsg++
	msg.ID = f.nextMsg
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	f.messages[msg.ConversationID] = append(f.messages[msg.ConversationID], *msg)
	return nil
}

func (f *fakeConvRepo) ListMessages(_ context.Context, convID uint64) ([]model.Message, error) {
	return f.messages[convID], nil
}

func (f *fakeConvRepo) SetPreview(_ context.Context, convID uint64, preview string, at time.Time) error {
	cv, ok := f.convs[convID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cv.LastMessage = preview
	cv.LastMessageAt = &at
	return nil
}

func (f *fakeConvRepo) IncrementUnread(_ context.Context, convID uint64, uid string) error {
	f.unread[unreadKey(convID, uid)]++
	return nil
}

func (f *fakeConvRepo) ResetUnread(_ context.Context, convID uint64, uid string) error {
	f.unread[unreadKey(convID, uid)] = 0
	return nil
}

func (f *fakeConvRepo) UnreadCounts(_ context.Context, uid string, convIDs []uint64) (map[uint64]int64, error) {
	out := make(map[uint64]int64, len(convIDs))
	for _, id := range convIDs {
		out[id] = f.unread[unreadKey(id, uid)]
	}
	return out, nil
}

func (f *fakeConvRepo) SetDB(*gorm.DB) {}

type fakeProfileRepo struct {
	profiles map[string]*model.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*model.UserProfile)}
}

func (f *fakeProfileRepo) GetOrCreate(_ context.Context, uid string) (*model.UserProfile, error) {
	p, ok := f.profiles[uid]
	if !ok {
		p = &model.UserProfile{UID: uid, Roles: string(model.RoleClient), CreatedAt: time.Now()}
		f.profiles[uid] = p
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) FindByUID(_ context.Context, uid string) (*model.UserProfile, error) {
	p, ok := f.profiles[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *model.UserProfile) error {
	cp := *p
	f.profiles[p.UID] = &cp
	return nil
}

func (f *fakeProfileRepo) SetDB(*gorm.DB) {}

type fakeNotifRepo struct {
	notifications []model.Notification
	failCreate    bool
	nextID        uint64
}

func newFakeNotifRepo() *fakeNotifRepo {
	return &fakeNotifRepo{}
}

func (f *fakeNotifRepo) Create(_ context.Context, n *model.Notification) error {
	if f.failCreate {
		return gorm.ErrInvalidDB
	}
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotifRepo) ListByUser(_ context.Context, userUID string, unreadOnly bool, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var out []model.Notification
	for i := len(f.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		n := f.notifications[i]
		if n.UserUID != userUID {
			continue
		}
		if unreadOnly && n.ReadAt != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotifRepo) MarkAllRead(_ context.Context, userUID string) error {
	now := time.Now()
	for i := range f.notifications {
		if f.notifications[i].UserUID == userUID && f.notifications[i].ReadAt == nil {
			f.notifications[i].ReadAt = &now
		}
	}
	return nil
}

func (f *fakeNotifRepo) CountUnread(_ context.Context, userUID string) (int64, error) {
	var cnt int64
	for i := range f.notifications {
		if f.notifications[i].UserUID == userUID && f.notifications[i].ReadAt == nil {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeNotifRepo) SetDB(*gorm.DB) {}

type fakeEarningsRepo struct {
	balances map[string]int64
}

func newFakeEarningsRepo() *fakeEarningsRepo {
	return &fakeEarningsRepo{balances: make(map[string]int64)}
}

func (f *fakeEarningsRepo) Add(_ context.Context, uid string, amount int64) error {
	f.balances[uid] += amount
	return nil
}

func (f *fakeEarningsRepo) Deduct(_ context.Context, uid string, amount int64) error {
	if f.balances[uid] < amount {
		return gorm.ErrRecordNotFound
	}
	f.balances[uid] -= amount
	return nil
}

func (f *fakeEarningsRepo) Get(_ context.Context, uid string) (*model.EarningsBalance, error) {
	return &model.EarningsBalance{UID: uid, Amount: f.balances[uid]}, nil
}

func (f *fakeEarningsRepo) SetDB(*gorm.DB) {}
