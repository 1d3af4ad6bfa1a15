package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xlance-app/xlance-backend/internal/repository"
)

type CategoryHandler struct {
	repo repository.CategoryRepository
}

func NewCategoryHandler(repo repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

func (h *CategoryHandler) List(c echo.Context) error {
	list, err := h.repo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch categories"))
	}
	names := make([]string, 0, len(list))
	for _, cat := range list {
		names = append(names, cat.Name)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"categories": names})
}
