package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/service"
)

type ReportHandler struct {
	svc service.ReportService
}

func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// roleParam reads the ?role= query; anything other than freelancer reports
// the client (spending) side.
func roleParam(c echo.Context) model.Role {
	if r, err := model.ParseRole(c.QueryParam("role")); err == nil && r == model.RoleFreelancer {
		return model.RoleFreelancer
	}
	return model.RoleClient
}

func (h *ReportHandler) Summary(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	sum, err := h.svc.Summary(c.Request().Context(), uid, roleParam(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build summary"))
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *ReportHandler) Monthly(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	points, err := h.svc.Monthly(c.Request().Context(), uid, roleParam(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build series"))
	}
	return c.JSON(http.StatusOK, points)
}

func (h *ReportHandler) Categories(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	slices, err := h.svc.Categories(c.Request().Context(), uid, roleParam(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build categories"))
	}
	return c.JSON(http.StatusOK, slices)
}

func (h *ReportHandler) Transactions(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	tx, err := h.svc.Transactions(c.Request().Context(), uid, roleParam(c), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build transactions"))
	}
	return c.JSON(http.StatusOK, tx)
}

func (h *ReportHandler) TopPartners(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	partners, err := h.svc.TopPartners(c.Request().Context(), uid, roleParam(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build partners"))
	}
	return c.JSON(http.StatusOK, partners)
}

func (h *ReportHandler) Metrics(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	m, err := h.svc.Metrics(c.Request().Context(), uid, roleParam(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build metrics"))
	}
	return c.JSON(http.StatusOK, m)
}

func (h *ReportHandler) Overview(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
	ov, err := h.svc.Overview(c.Request().Context(), uid, roleParam(c), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build report"))
	}
	return c.JSON(http.StatusOK, ov)
}
