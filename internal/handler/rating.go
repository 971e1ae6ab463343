package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/repository"
)

// RatingHandler serves per-user class ratings. Rating a class again
// replaces the previous rating; the response carries the recomputed
// class average.
type RatingHandler struct {
	Ratings *repository.RatingRepo
	Classes *repository.ClassRepo
}

func NewRatingHandler(ra *repository.RatingRepo, cl *repository.ClassRepo) *RatingHandler {
	return &RatingHandler{Ratings: ra, Classes: cl}
}

type ratingReq struct {
	Rating float64 `json:"rating"`
	Review string  `json:"review"`
}

// Rate handles POST /v1/classes/:id/ratings.
func (h *RatingHandler) Rate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	classID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid class id")
	}
	var req ratingReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return badRequest(c, "rating must be between 1 and 5")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return notFound(c, "class not found")
		}
		return internalError(c, "load class failed")
	}

	avg, err := h.Ratings.Upsert(ctx, &model.ClassRating{
		ClassID: classID,
		UserID:  uid,
		Rating:  req.Rating,
		Review:  req.Review,
	})
	if err != nil {
		return internalError(c, "save rating failed")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"classId":       classID,
		"rating":        req.Rating,
		"averageRating": avg,
	})
}

// List handles GET /v1/classes/:id/ratings.
func (h *RatingHandler) List(c echo.Context) error {
	classID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid class id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return notFound(c, "class not found")
		}
		return internalError(c, "load class failed")
	}
	ratings, err := h.Ratings.ListByClass(ctx, classID)
	if err != nil {
		return internalError(c, "list ratings failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"ratings": ratings})
}
