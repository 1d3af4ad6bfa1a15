package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/repository"
	"github.com/xlance-app/xlance-backend/internal/service"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type OrderResponse struct {
	ID             uint64  `json:"id"`
	GigID          uint64  `json:"gigId"`
	GigTitle       string  `json:"gigTitle,omitempty"`
	BuyerUID       string  `json:"buyerUid"`
	SellerUID      string  `json:"sellerUid"`
	ConversationID uint64  `json:"conversationId"`
	Category       string  `json:"category"`
	Price          int64   `json:"price"`
	ServiceFee     int64   `json:"serviceFee"`
	Total          int64   `json:"total"`
	Status         string  `json:"status"`
	Requirement    string  `json:"requirement,omitempty"`
	DeliveredAt    *string `json:"deliveredAt,omitempty"`
	CompletedAt    *string `json:"completedAt,omitempty"`
	CancelledAt    *string `json:"cancelledAt,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

type CreateOrderRequest struct {
	GigID       uint64 `json:"gigId"`
	Requirement string `json:"requirement"`
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func toOrderResponse(o *model.Order, gig *model.Gig) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID,
		GigID:          o.GigID,
		BuyerUID:       o.BuyerUID,
		SellerUID:      o.SellerUID,
		ConversationID: o.ConversationID,
		Category:       o.Category,
		Price:          o.Price,
		ServiceFee:     o.ServiceFee,
		Total:          o.Total,
		Status:         string(o.Status),
		Requirement:    o.Requirement,
		DeliveredAt:    fmtTimePtr(o.DeliveredAt),
		CompletedAt:    fmtTimePtr(o.CompletedAt),
		CancelledAt:    fmtTimePtr(o.CancelledAt),
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
	if gig != nil {
		resp.GigTitle = gig.Title
	}
	return resp
}

func (h *OrderHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	o, err := h.svc.Create(c.Request().Context(), req.GigID, uid, req.Requirement)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "gig not found"))
		case service.ErrGigNotAvailable:
			return c.JSON(http.StatusConflict, NewErrorResponse("gig_not_available", "gig is not available for orders"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o, nil))
}

func (h *OrderHandler) Get(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	o, err := h.svc.Get(c.Request().Context(), id, uid)
	if err != nil {
		return h.mapError(c, err, "failed to fetch order")
	}
	return c.JSON(http.StatusOK, toOrderResponse(o, nil))
}

func (h *OrderHandler) transition(c echo.Context, fn func(uint64, string) (*model.Order, error), failMsg string) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	o, err := fn(id, uid)
	if err != nil {
		return h.mapError(c, err, failMsg)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o, nil))
}

func (h *OrderHandler) Deliver(c echo.Context) error {
	return h.transition(c, func(id uint64, uid string) (*model.Order, error) {
		return h.svc.Deliver(c.Request().Context(), id, uid)
	}, "failed to deliver order")
}

func (h *OrderHandler) Complete(c echo.Context) error {
	return h.transition(c, func(id uint64, uid string) (*model.Order, error) {
		return h.svc.Complete(c.Request().Context(), id, uid)
	}, "failed to complete order")
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	return h.transition(c, func(id uint64, uid string) (*model.Order, error) {
		return h.svc.Cancel(c.Request().Context(), id, uid)
	}, "failed to cancel order")
}

func (h *OrderHandler) list(c echo.Context, fn func(string) ([]service.OrderWithGig, error)) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := fn(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch orders"))
	}
	resp := make([]OrderResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toOrderResponse(&list[i].Order, list[i].Gig))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	return h.list(c, func(uid string) ([]service.OrderWithGig, error) {
		return h.svc.ListByBuyer(c.Request().Context(), uid)
	})
}

func (h *OrderHandler) ListSales(c echo.Context) error {
	return h.list(c, func(uid string) ([]service.OrderWithGig, error) {
		return h.svc.ListBySeller(c.Request().Context(), uid)
	})
}

func (h *OrderHandler) mapError(c echo.Context, err error, failMsg string) error {
	switch err {
	case service.ErrNotFound:
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
	case service.ErrForbidden:
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not a party to this order"))
	case repository.ErrDBNotReady:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", failMsg))
	}
	return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
}
