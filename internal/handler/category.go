package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/repository"
)

// CategoryHandler serves the category catalogue. Creation and deletion
// are admin operations; listing is public so clients can build filter
// menus.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(r *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: r}
}

type categoryReq struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Create handles POST /v1/categories.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return badRequest(c, "name required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat := model.Category{Name: req.Name, Logo: strings.TrimSpace(req.Logo)}
	if err := h.Categories.Create(ctx, &cat); err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "category already exists"})
		}
		return internalError(c, "create category failed")
	}
	return c.JSON(http.StatusCreated, cat)
}

// List handles GET /v1/categories.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.ListAll(ctx)
	if err != nil {
		return internalError(c, "list categories failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

// GetByID handles GET /v1/categories/:id.
func (h *CategoryHandler) GetByID(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid category id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return notFound(c, "category not found")
		}
		return internalError(c, "load category failed")
	}
	return c.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /v1/categories/:id. Categories still referenced
// by classes cannot be removed; the FK violation surfaces as a
// conflict.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid category id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return notFound(c, "category not found")
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "category still in use"})
	}
	return c.NoContent(http.StatusNoContent)
}
