package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/xlance-app/xlance-backend/internal/service"
	"github.com/xlance-app/xlance-backend/internal/storage"
)

const maxImageBytes = 5 << 20

// UploadHandler accepts a raw image body for a gig the caller owns and
// stores the resulting public URL on the gig.
type UploadHandler struct {
	uploader *storage.Uploader
	gigSvc   service.GigService
}

func NewUploadHandler(uploader *storage.Uploader, gigSvc service.GigService) *UploadHandler {
	return &UploadHandler{uploader: uploader, gigSvc: gigSvc}
}

func (h *UploadHandler) UploadGigImage(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	gig, err := h.gigSvc.Get(c.Request().Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "gig not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch gig"))
	}
	if gig.SellerUID != uid {
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not the owner"))
	}

	contentType := c.Request().Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unsupported content type"))
	}
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImageBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "failed to read body"))
	}
	if len(data) == 0 || len(data) > maxImageBytes {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "image must be between 1 byte and 5 MB"))
	}

	url, err := h.uploader.UploadGigImage(c.Request().Context(), id, contentType, data)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to upload image"))
	}
	gig, err = h.gigSvc.SetImage(c.Request().Context(), id, uid, url)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to save image url"))
	}
	return c.JSON(http.StatusOK, toGigResponse(gig))
}
