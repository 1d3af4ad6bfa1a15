package handler

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/xlance-app/xlance-backend/internal/account"
)

type UserHandler struct {
	authClient *auth.Client
}

func NewUserHandler(client *auth.Client) *UserHandler {
	return &UserHandler{authClient: client}
}

type PublicUserResponse struct {
	UID         string  `json:"uid"`
	DisplayName string  `json:"displayName"`
	Initials    string  `json:"initials"`
	PhotoURL    *string `json:"photoURL"`
}

func (h *UserHandler) GetPublic(c echo.Context) error {
	uid := c.Param("uid")
	if uid == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid uid"))
	}
	user, err := h.authClient.GetUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
	}
	resp := PublicUserResponse{
		UID:         user.UID,
		DisplayName: user.DisplayName,
		Initials:    account.Initials(user.DisplayName),
		PhotoURL:    strPtrOrNil(user.PhotoURL),
	}
	return c.JSON(http.StatusOK, resp)
}

type PrecheckRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PrecheckResponse struct {
	EmailValid    bool   `json:"emailValid"`
	EmailExists   bool   `json:"emailExists"`
	PasswordScore int    `json:"passwordScore"`
	PasswordLabel string `json:"passwordLabel"`
	PasswordValid bool   `json:"passwordValid"`
}

// Precheck backs the signup form: email shape and existence plus the
// password strength score, in one round trip.
func (h *UserHandler) Precheck(c echo.Context) error {
	var req PrecheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	resp := PrecheckResponse{
		EmailValid: account.ValidateEmail(req.Email),
	}
	if resp.EmailValid {
		if _, err := h.authClient.GetUserByEmail(c.Request().Context(), req.Email); err == nil {
			resp.EmailExists = true
		}
	}
	if req.Password != "" {
		strength := account.CheckPassword(req.Password)
		resp.PasswordScore = strength.Score
		resp.PasswordLabel = strength.Label
		resp.PasswordValid = strength.IsValid
	}
	return c.JSON(http.StatusOK, resp)
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
