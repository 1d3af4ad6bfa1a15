package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xlance-app/xlance-backend/internal/account"
	"github.com/xlance-app/xlance-backend/internal/model"
	"github.com/xlance-app/xlance-backend/internal/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type ProfileResponse struct {
	UID         string   `json:"uid"`
	DisplayName string   `json:"displayName"`
	Initials    string   `json:"initials"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
	HourlyRate  int64    `json:"hourlyRate"`
	AvatarURL   *string  `json:"avatarUrl,omitempty"`
	Roles       []string `json:"roles"`
	Onboarded   bool     `json:"onboarded"`
	CreatedAt   string   `json:"createdAt"`
}

type ProfileRequest struct {
	DisplayName string   `json:"displayName"`
	Bio         string   `json:"bio"`
	Skills      []string `json:"skills"`
	HourlyRate  int64    `json:"hourlyRate"`
	AvatarURL   *string  `json:"avatarUrl"`
}

type OnboardingRequest struct {
	Roles      []string `json:"roles"`
	Skills     []string `json:"skills"`
	HourlyRate int64    `json:"hourlyRate"`
}

func splitSkills(col string) []string {
	if col == "" {
		return []string{}
	}
	return strings.Split(col, ",")
}

func toProfileResponse(p *model.UserProfile) ProfileResponse {
	return ProfileResponse{
		UID:         p.UID,
		DisplayName: p.DisplayName,
		Initials:    account.Initials(p.DisplayName),
		Bio:         p.Bio,
		Skills:      splitSkills(p.Skills),
		HourlyRate:  p.HourlyRate,
		AvatarURL:   p.AvatarURL,
		Roles:       p.RoleSet().Slice(),
		Onboarded:   p.Onboarded,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

// Me resolves the caller's profile, creating it with defaults when missing.
func (h *ProfileHandler) Me(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	p, err := h.svc.GetOrCreate(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch profile"))
	}
	return c.JSON(http.StatusOK, toProfileResponse(p))
}

func (h *ProfileHandler) Update(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.Update(c.Request().Context(), uid, service.ProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Skills:      req.Skills,
		HourlyRate:  req.HourlyRate,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toProfileResponse(p))
}

func (h *ProfileHandler) CompleteOnboarding(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req OnboardingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.CompleteOnboarding(c.Request().Context(), uid, service.OnboardingInput{
		Roles:      req.Roles,
		Skills:     req.Skills,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toProfileResponse(p))
}
