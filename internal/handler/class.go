package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/geo"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/queue"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/repository"
	queuepub "github.com/RaselHossen0/nearest-class-finder-backend/internal/service"
)

// ClassHandler serves class listing CRUD. Discovery lives in
// DiscoveryHandler; this handler covers the owner-facing surface.
type ClassHandler struct {
	Classes    *repository.ClassRepo
	Categories *repository.CategoryRepo
	Media      *repository.MediaRepo
}

func NewClassHandler(cl *repository.ClassRepo, cat *repository.CategoryRepo, me *repository.MediaRepo) *ClassHandler {
	return &ClassHandler{Classes: cl, Categories: cat, Media: me}
}

type mediaIn struct {
	Type         string `json:"type"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Tags         string `json:"tags"`
	IsCoverImage bool   `json:"isCoverImage"`
}

type classCreateReq struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Coordinates any       `json:"coordinates"`
	Price       float64   `json:"price"`
	CategoryID  uint64    `json:"categoryId"`
	Media       []mediaIn `json:"media"`
}

type classUpdateReq struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Coordinates any        `json:"coordinates"`
	Price       *float64   `json:"price"`
	CategoryID  *uint64    `json:"categoryId"`
	Media       *[]mediaIn `json:"media"`
}

func toMedia(ins []mediaIn) ([]model.Media, error) {
	out := make([]model.Media, 0, len(ins))
	for _, m := range ins {
		t := strings.ToLower(strings.TrimSpace(m.Type))
		if !model.ValidMediaType(t) {
			return nil, errors.New("invalid media type: " + m.Type)
		}
		if strings.TrimSpace(m.URL) == "" {
			return nil, errors.New("media url required")
		}
		out = append(out, model.Media{
			Type:         t,
			URL:          m.URL,
			Title:        m.Title,
			Description:  m.Description,
			Tags:         m.Tags,
			IsCoverImage: m.IsCoverImage,
		})
	}
	return out, nil
}

// Create handles POST /v1/classes. The category must already exist;
// coordinates are optional but validated when present. A successful
// create publishes a class.created activity event.
func (h *ClassHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req classCreateReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" || req.Location == "" {
		return badRequest(c, "name and location required")
	}
	if req.Price < 0 {
		return badRequest(c, "price must not be negative")
	}
	if req.CategoryID == 0 {
		return badRequest(c, "categoryId required")
	}

	pt, err := geo.ParseCoordinates(req.Coordinates)
	if err != nil {
		return badRequest(c, "invalid coordinates, expected [latitude, longitude]")
	}
	media, err := toMedia(req.Media)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Categories.Exists(ctx, req.CategoryID)
	if err != nil {
		return internalError(c, "category lookup failed")
	}
	if !ok {
		return badRequest(c, "invalid category")
	}

	cl := model.Class{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		OwnerID:     uid,
	}
	if pt != nil {
		cl.Latitude = &pt.Lat
		cl.Longitude = &pt.Lon
	}
	if err := h.Classes.Create(ctx, &cl); err != nil {
		return internalError(c, "create class failed")
	}
	if len(media) > 0 {
		if err := h.Media.ReplaceForClass(ctx, cl.ID, media); err != nil {
			return internalError(c, "save media failed")
		}
	}

	// Activity events are best effort; a broker outage must not fail
	// the request.
	_ = queuepub.PublishActivity(ctx, queue.ClassCreatedEvent{
		Kind:       queue.KindClassCreated,
		ClassID:    cl.ID,
		Name:       cl.Name,
		Location:   cl.Location,
		Price:      cl.Price,
		CategoryID: cl.CategoryID,
		OwnerID:    cl.OwnerID,
		CreatedAt:  cl.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"class": cl, "media": media})
}

// GetByID handles GET /v1/classes/:id and includes the media gallery.
func (h *ClassHandler) GetByID(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid class id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cl, err := h.Classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return notFound(c, "class not found")
		}
		return internalError(c, "load class failed")
	}
	media, err := h.Media.ListByClass(ctx, id)
	if err != nil {
		return internalError(c, "load media failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"class": cl, "media": media})
}

// Update handles PUT /v1/classes/:id. Only the owner or an admin may
// update; nil body fields stay untouched. A media array, when present,
// replaces the whole gallery.
func (h *ClassHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid class id")
	}

	var req classUpdateReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cl, err := h.Classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return notFound(c, "class not found")
		}
		return internalError(c, "load class failed")
	}
	if cl.OwnerID != uid && getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your class"})
	}

	upd := repository.ClassUpdate{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
	}
	if req.Price != nil && *req.Price < 0 {
		return badRequest(c, "price must not be negative")
	}
	if req.CategoryID != nil {
		ok, err := h.Categories.Exists(ctx, *req.CategoryID)
		if err != nil {
			return internalError(c, "category lookup failed")
		}
		if !ok {
			return badRequest(c, "invalid category")
		}
		upd.CategoryID = req.CategoryID
	}
	if req.Coordinates != nil {
		pt, err := geo.ParseCoordinates(req.Coordinates)
		if err != nil {
			return badRequest(c, "invalid coordinates, expected [latitude, longitude]")
		}
		if pt != nil {
			upd.Latitude = &pt.Lat
			upd.Longitude = &pt.Lon
		}
	}

	if err := h.Classes.UpdatePartial(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return notFound(c, "class not found")
		}
		return internalError(c, "update class failed")
	}
	if req.Media != nil {
		media, err := toMedia(*req.Media)
		if err != nil {
			return badRequest(c, err.Error())
		}
		if err := h.Media.ReplaceForClass(ctx, id, media); err != nil {
			return internalError(c, "save media failed")
		}
	}

	cl, err = h.Classes.GetByID(ctx, id)
	if err != nil {
		return internalError(c, "load class failed")
	}
	media, err := h.Media.ListByClass(ctx, id)
	if err != nil {
		return internalError(c, "load media failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"class": cl, "media": media})
}

// Delete handles DELETE /v1/classes/:id, cascading to media, ratings,
// events and memberships. Admins may delete any class.
func (h *ClassHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid class id")
	}

	ownerID := uid
	if getRole(c) == model.RoleAdmin {
		ownerID = 0 // skip the ownership check
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Classes.Delete(ctx, id, ownerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrClassNotFound):
			return notFound(c, "class not found")
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your class"})
		}
		return internalError(c, "delete class failed")
	}
	return c.NoContent(http.StatusNoContent)
}
