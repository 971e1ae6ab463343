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
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/repository"
)

// eventDateLayout is the accepted wire format for event dates.
const eventDateLayout = "2006-01-02 15:04:05"

// EventHandler serves event CRUD. Ownership follows the parent class:
// only the class owner or an admin may create, update or delete its
// events.
type EventHandler struct {
	Events  *repository.EventRepo
	Classes *repository.ClassRepo
	Members *repository.EventMemberRepo
}

func NewEventHandler(ev *repository.EventRepo, cl *repository.ClassRepo, me *repository.EventMemberRepo) *EventHandler {
	return &EventHandler{Events: ev, Classes: cl, Members: me}
}

type eventCreateReq struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Coordinates any    `json:"coordinates"`
	ClassID     uint64 `json:"classId"`
}

type eventUpdateReq struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Coordinates any     `json:"coordinates"`
}

// ownsClass loads the class and checks the caller may manage it.
func (h *EventHandler) ownsClass(ctx context.Context, c echo.Context, classID uint64) (int, string) {
	uid, err := getUserID(c)
	if err != nil {
		return http.StatusUnauthorized, "unauthorized"
	}
	cl, err := h.Classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return http.StatusNotFound, "class not found"
		}
		return http.StatusInternalServerError, "load class failed"
	}
	if cl.OwnerID != uid && getRole(c) != model.RoleAdmin {
		return http.StatusForbidden, "not your class"
	}
	return 0, ""
}

// Create handles POST /v1/events.
func (h *EventHandler) Create(c echo.Context) error {
	var req eventCreateReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.ClassID == 0 {
		return badRequest(c, "title and classId required")
	}
	date, err := time.Parse(eventDateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return badRequest(c, "invalid date, expected YYYY-MM-DD HH:MM:SS")
	}
	pt, err := geo.ParseCoordinates(req.Coordinates)
	if err != nil {
		return badRequest(c, "invalid coordinates, expected [latitude, longitude]")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if code, msg := h.ownsClass(ctx, c, req.ClassID); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}

	e := model.Event{
		Title:       req.Title,
		Date:        date,
		Description: req.Description,
		Location:    strings.TrimSpace(req.Location),
		ClassID:     req.ClassID,
	}
	if pt != nil {
		e.Latitude = &pt.Lat
		e.Longitude = &pt.Lon
	}
	if err := h.Events.Create(ctx, &e); err != nil {
		return internalError(c, "create event failed")
	}
	return c.JSON(http.StatusCreated, e)
}

// GetByID handles GET /v1/events/:id and includes the member count.
func (h *EventHandler) GetByID(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return notFound(c, "event not found")
		}
		return internalError(c, "load event failed")
	}
	count, err := h.Members.CountByEvent(ctx, id)
	if err != nil {
		return internalError(c, "count members failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"event": e, "memberCount": count})
}

// ListByClass handles GET /v1/classes/:id/events.
func (h *EventHandler) ListByClass(c echo.Context) error {
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
	events, err := h.Events.ListByClass(ctx, classID)
	if err != nil {
		return internalError(c, "list events failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Update handles PUT /v1/events/:id.
func (h *EventHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}
	var req eventUpdateReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return notFound(c, "event not found")
		}
		return internalError(c, "load event failed")
	}
	if code, msg := h.ownsClass(ctx, c, e.ClassID); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}

	upd := repository.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.Date != nil {
		d, err := time.Parse(eventDateLayout, strings.TrimSpace(*req.Date))
		if err != nil {
			return badRequest(c, "invalid date, expected YYYY-MM-DD HH:MM:SS")
		}
		ds := d.Format(eventDateLayout)
		upd.Date = &ds
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

	if err := h.Events.UpdatePartial(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return notFound(c, "event not found")
		}
		return internalError(c, "update event failed")
	}
	e, err = h.Events.GetByID(ctx, id)
	if err != nil {
		return internalError(c, "load event failed")
	}
	return c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /v1/events/:id, removing the roster with it.
func (h *EventHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return notFound(c, "event not found")
		}
		return internalError(c, "load event failed")
	}
	if code, msg := h.ownsClass(ctx, c, e.ClassID); code != 0 {
		return c.JSON(code, echo.Map{"error": msg})
	}

	if err := h.Events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return notFound(c, "event not found")
		}
		return internalError(c, "delete event failed")
	}
	return c.NoContent(http.StatusNoContent)
}
