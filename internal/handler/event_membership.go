package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/membership"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/queue"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/repository"
	queuepub "github.com/RaselHossen0/nearest-class-finder-backend/internal/service"
)

// MembershipHandler serves event join/leave and roster endpoints on top
// of the membership service. Join responses follow the error-flag
// contract of the original API: {"error": 0|1, "message", "isJoined"}.
type MembershipHandler struct {
	Svc    *membership.Service
	Events *repository.EventRepo
	Users  *repository.UserRepo
}

func NewMembershipHandler(svc *membership.Service, ev *repository.EventRepo, us *repository.UserRepo) *MembershipHandler {
	return &MembershipHandler{Svc: svc, Events: ev, Users: us}
}

// Join handles POST /v1/events/:id/join. Joining twice is not an
// error: the second call reports isJoined without creating a row. Only
// a fresh join publishes an event.joined activity message.
func (h *MembershipHandler) Join(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": 1, "message": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": 1, "message": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Svc.Join(ctx, eventID, uid)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": 1, "message": "event not found"})
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": 1, "message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": 1, "message": "join failed"})
	}

	if res.AlreadyJoined {
		return c.JSON(http.StatusOK, echo.Map{
			"error":    0,
			"message":  "already joined",
			"isJoined": true,
		})
	}

	// Best effort: look up display data and publish; failures do not
	// affect the join.
	if e, err := h.Events.GetByID(ctx, eventID); err == nil {
		name := ""
		if u, err := h.Users.GetByID(ctx, uid); err == nil {
			name = u.Name
		}
		_ = queuepub.PublishActivity(ctx, queue.EventJoinedEvent{
			Kind:       queue.KindEventJoined,
			EventID:    eventID,
			EventTitle: e.Title,
			ClassID:    e.ClassID,
			UserID:     uid,
			UserName:   name,
			JoinedAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"error":    0,
		"message":  "joined event",
		"isJoined": true,
	})
}

// Leave handles DELETE /v1/events/:id/join.
func (h *MembershipHandler) Leave(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": 1, "message": "unauthorized"})
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": 1, "message": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	removed, err := h.Svc.Leave(ctx, eventID, uid)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": 1, "message": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": 1, "message": "leave failed"})
	}
	if !removed {
		return c.JSON(http.StatusOK, echo.Map{
			"error":    0,
			"message":  "not a member",
			"isJoined": false,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"error":    0,
		"message":  "left event",
		"isJoined": false,
	})
}

// Members handles GET /v1/events/:id/members. An event nobody joined
// returns an empty array, not an error.
func (h *MembershipHandler) Members(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid event id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	members, err := h.Svc.Members(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return notFound(c, "event not found")
		}
		return internalError(c, "list members failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"members": members})
}
