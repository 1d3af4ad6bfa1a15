package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/realtime"
	"github.com/xlance-app/xlance-backend/internal/repository"
	"gorm.io/gorm"
)

const serviceFeeRate = 0.05

var ErrGigNotAvailable = errors.New("gig_not_available")

// ServiceFee is the platform cut added on top of the gig price.
func ServiceFee(price int64) int64 {
	return int64(math.Round(float64(price) * serviceFeeRate))
}

type OrderService interface {
	Create(ctx context.Context, gigID uint64, buyerUID, requirement string) (*model.Order, error)
	Get(ctx context.Context, orderID uint64, uid string) (*model.Order, error)
	Deliver(ctx context.Context, orderID uint64, sellerUID string) (*model.Order, error)
	Complete(ctx context.Context, orderID uint64, buyerUID string) (*model.Order, error)
	Cancel(ctx context.Context, orderID uint64, uid string) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerUID string) ([]OrderWithGig, error)
	ListBySeller(ctx context.Context, sellerUID string) ([]OrderWithGig, error)
}

type OrderWithGig struct {
	Order model.Order
	Gig   *model.Gig
}

type orderService struct {
	orderRepo    repository.OrderRepository
	gigRepo      repository.GigRepository
	convRepo     repository.ConversationRepository
	earningsRepo repository.EarningsRepository
	notifSvc     NotificationService
	broker       *realtime.Broker
}

func NewOrderService(orderRepo repository.OrderRepository, gigRepo repository.GigRepository, convRepo repository.ConversationRepository, earningsRepo repository.EarningsRepository, notifSvc NotificationService, broker *realtime.Broker) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		gigRepo:      gigRepo,
		convRepo:     convRepo,
		earningsRepo: earningsRepo,
		notifSvc:     notifSvc,
		broker:       broker,
	}
}

func (s *orderService) Create(ctx context.Context, gigID uint64, buyerUID, requirement string) (*model.Order, error) {
	if buyerUID == "" {
		return nil, errors.New("buyer is required")
	}
	gig, err := s.gigRepo.FindByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if gig.SellerUID == buyerUID {
		return nil, errors.New("cannot order your own gig")
	}
	if gig.Status != model.GigStatusActive {
		return nil, ErrGigNotAvailable
	}

	cv, err := s.convRepo.FindOrCreate(ctx, gig.SellerUID, buyerUID)
	if err != nil {
		return nil, err
	}

	fee := ServiceFee(gig.Price)
	o := &model.Order{
		GigID:          gigID,
		BuyerUID:       buyerUID,
		SellerUID:      gig.SellerUID,
		ConversationID: cv.ID,
		Category:       gig.Category,
		Price:          gig.Price,
		ServiceFee:     fee,
		Total:          gig.Price + fee,
		Status:         model.OrderStatusActive,
		Requirement:    requirement,
	}
	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.postSystemMessage(ctx, cv, buyerUID, fmt.Sprintf("New order placed for \"%s\".", gig.Title))
	orderID := o.ID
	s.notifSvc.Notify(ctx, &model.Notification{
		UserUID: gig.SellerUID,
		Type:    NotifTypeOrderPlaced,
		Title:   "New order",
		Body:    fmt.Sprintf("You received a new order for \"%s\".", gig.Title),
		Link:    fmt.Sprintf("/orders/%d", orderID),
		GigID:   &gigID,
		OrderID: &orderID,
	})
	s.publishOrderUpdate(o)
	return o, nil
}

func (s *orderService) Get(ctx context.Context, orderID uint64, uid string) (*model.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if uid != "" && uid != o.BuyerUID && uid != o.SellerUID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *orderService) Deliver(ctx context.Context, orderID uint64, sellerUID string) (*model.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.SellerUID != sellerUID {
		return nil, ErrForbidden
	}
	if o.Status == model.OrderStatusDelivered {
		return o, nil
	}
	if o.Status != model.OrderStatusActive {
		return nil, fmt.Errorf("cannot deliver a %s order", o.Status)
	}
	now := time.Now()
	o.Status = model.OrderStatusDelivered
	o.DeliveredAt = &now
	if err := s.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	s.afterTransition(ctx, o, sellerUID, o.BuyerUID,
		"Your order has been delivered. Please review the work.",
		NotifTypeOrderDelivered, "Order delivered")
	return o, nil
}

func (s *orderService) Complete(ctx context.Context, orderID uint64, buyerUID string) (*model.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.BuyerUID != buyerUID {
		return nil, ErrForbidden
	}
	if o.Status == model.OrderStatusCompleted {
		return o, nil
	}
	affected, err := s.orderRepo.MarkCompletedIfDelivered(ctx, orderID, buyerUID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("cannot complete a %s order", o.Status)
	}
	o, err = s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// The seller's payout is the gig price; the fee stays with the platform.
	if err := s.earningsRepo.Add(ctx, o.SellerUID, o.Price); err != nil {
		return nil, err
	}
	s.afterTransition(ctx, o, buyerUID, o.SellerUID,
		"Order completed. Payment has been released.",
		NotifTypeOrderCompleted, "Payment released")
	return o, nil
}

func (s *orderService) Cancel(ctx context.Context, orderID uint64, uid string) (*model.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if uid != o.BuyerUID && uid != o.SellerUID {
		return nil, ErrForbidden
	}
	if o.Status == model.OrderStatusCancelled {
		return o, nil
	}
	if o.Status == model.OrderStatusCompleted {
		return nil, errors.New("cannot cancel a completed order")
	}
	now := time.Now()
	o.Status = model.OrderStatusCancelled
	o.CancelledAt = &now
	if err := s.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	peer := o.SellerUID
	if uid == o.SellerUID {
		peer = o.BuyerUID
	}
	s.afterTransition(ctx, o, uid, peer,
		"The order has been cancelled.",
		NotifTypeOrderCancelled, "Order cancelled")
	return o, nil
}

func (s *orderService) ListByBuyer(ctx context.Context, buyerUID string) ([]OrderWithGig, error) {
	if buyerUID == "" {
		return nil, errors.New("buyer is required")
	}
	orders, err := s.orderRepo.ListByBuyer(ctx, buyerUID)
	if err != nil {
		return nil, err
	}
	return s.attachGigs(ctx, orders), nil
}

func (s *orderService) ListBySeller(ctx context.Context, sellerUID string) ([]OrderWithGig, error) {
	if sellerUID == "" {
		return nil, errors.New("seller is required")
	}
	orders, err := s.orderRepo.ListBySeller(ctx, sellerUID)
	if err != nil {
		return nil, err
	}
	return s.attachGigs(ctx, orders), nil
}

func (s *orderService) attachGigs(ctx context.Context, orders []model.Order) []OrderWithGig {
	resp := make([]OrderWithGig, 0, len(orders))
	for _, o := range orders {
		gig, _ := s.gigRepo.FindByID(ctx, o.GigID)
		resp = append(resp, OrderWithGig{Order: o, Gig: gig})
	}
	return resp
}

// postSystemMessage drops a status line into the order's conversation,
// best-effort, and refreshes the preview.
func (s *orderService) postSystemMessage(ctx context.Context, cv *model.Conversation, senderUID, body string) {
	if cv == nil || cv.ID == 0 {
		return
	}
	msg := &model.Message{
		ConversationID: cv.ID,
		SenderUID:      senderUID,
		Body:           body,
		System:         true,
	}
	if err := s.convRepo.CreateMessage(ctx, msg); err != nil {
		return
	}
	_ = s.convRepo.SetPreview(ctx, cv.ID, body, time.Now())
	for _, uid := range []string{cv.UserAUID, cv.UserBUID} {
		s.broker.Publish(realtime.UserTopic(uid), realtime.Event{
			Type: realtime.EventConversationUpdated,
			Data: map[string]interface{}{"conversationId": cv.ID},
		})
	}
}

func (s *orderService) afterTransition(ctx context.Context, o *model.Order, actorUID, peerUID, message, notifType, notifTitle string) {
	if o.ConversationID != 0 {
		if cv, err := s.convRepo.FindByID(ctx, o.ConversationID); err == nil {
			s.postSystemMessage(ctx, cv, actorUID, message)
		}
	}
	orderID := o.ID
	s.notifSvc.Notify(ctx, &model.Notification{
		UserUID: peerUID,
		Type:    notifType,
		Title:   notifTitle,
		Body:    message,
		Link:    fmt.Sprintf("/orders/%d", orderID),
		OrderID: &orderID,
	})
	s.publishOrderUpdate(o)
}

func (s *orderService) publishOrderUpdate(o *model.Order) {
	for _, uid := range []string{o.BuyerUID, o.SellerUID} {
		s.broker.Publish(realtime.UserTopic(uid), realtime.Event{
			Type: realtime.EventOrderUpdated,
			Data: map[string]interface{}{"orderId": o.ID, "status": o.Status},
		})
	}
}
