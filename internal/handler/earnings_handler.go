package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/xlance-app/xlance-backend/internal/service"
)

type EarningsHandler struct {
	svc service.EarningsService
}

func NewEarningsHandler(svc service.EarningsService) *EarningsHandler {
	return &EarningsHandler{svc: svc}
}

func (h *EarningsHandler) Get(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	balance, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch balance"))
	}
	return c.JSON(http.StatusOK, map[string]int64{"balance": balance})
}

func (h *EarningsHandler) Withdraw(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	amtStr := c.FormValue("amount")
	if amtStr == "" {
		amtStr = c.QueryParam("amount")
	}
	amt, err := strconv.ParseInt(amtStr, 10, 64)
	if err != nil || amt <= 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid amount"))
	}
	balance, err := h.svc.Withdraw(c.Request().Context(), uid, amt)
	if err != nil {
		if err == service.ErrInsufficientBalance {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "insufficient balance"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to withdraw"))
	}
	return c.JSON(http.StatusOK, map[string]int64{"balance": balance})
}
