package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/service"
)

type GigHandler struct {
	svc service.GigService
}

func NewGigHandler(svc service.GigService) *GigHandler {
	return &GigHandler{svc: svc}
}

type GigResponse struct {
	ID           uint64  `json:"id"`
	SellerUID    string  `json:"sellerUid"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        int64   `json:"price"`
	DeliveryDays int     `json:"deliveryDays"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	Views        int64   `json:"views"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

type GigListResponse struct {
	Gigs  []GigResponse `json:"gigs"`
	Total int64         `json:"total"`
}

type GigRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        int64   `json:"price"`
	DeliveryDays int     `json:"deliveryDays"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	ImageURL     *string `json:"imageUrl"`
}

func toGigResponse(g *model.Gig) GigResponse {
	return GigResponse{
		ID:           g.ID,
		SellerUID:    g.SellerUID,
		Title:        g.Title,
		Description:  g.Description,
		Price:        g.Price,
		DeliveryDays: g.DeliveryDays,
		Category:     g.Category,
		Status:       string(g.Status),
		Views:        g.Views,
		ImageURL:     g.ImageURL,
		CreatedAt:    g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    g.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *GigHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req GigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	gig, err := h.svc.Create(c.Request().Context(), uid, service.GigInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		DeliveryDays: req.DeliveryDays,
		Category:     req.Category,
		Status:       req.Status,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toGigResponse(gig))
}

func (h *GigHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	gig, err := h.svc.GetPublic(c.Request().Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "gig not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch gig"))
	}
	return c.JSON(http.StatusOK, toGigResponse(gig))
}

func (h *GigHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	category := c.QueryParam("category")
	gigs, total, err := h.svc.List(c.Request().Context(), category, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch gigs"))
	}
	resp := GigListResponse{
		Gigs:  make([]GigResponse, 0, len(gigs)),
		Total: total,
	}
	for i := range gigs {
		resp.Gigs = append(resp.Gigs, toGigResponse(&gigs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *GigHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	gigs, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch gigs"))
	}
	resp := make([]GigResponse, 0, len(gigs))
	for i := range gigs {
		resp = append(resp, toGigResponse(&gigs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *GigHandler) Update(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req GigRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	gig, err := h.svc.Update(c.Request().Context(), id, uid, service.GigInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		DeliveryDays: req.DeliveryDays,
		Category:     req.Category,
		Status:       req.Status,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "gig not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not the owner"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toGigResponse(gig))
}

func (h *GigHandler) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id, uid); err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "gig not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not the owner"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete gig"))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
