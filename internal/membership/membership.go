// Package membership implements idempotent event joins and rosters.
// The storage-level unique key on (event_id, user_id) is the source of
// truth for uniqueness; the service folds both the pre-check hit and a
// lost insert race into the same "already joined" success.
package membership

import (
	"context"
	"errors"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/repository"
)

// EventStore resolves event records. Implemented by the event
// repository; lookups for missing ids return repository.ErrEventNotFound.
type EventStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
}

// UserStore resolves user records. Implemented by the user repository;
// lookups for missing ids return repository.ErrUserNotFound.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// MemberStore owns the membership rows. Insert must enforce the
// composite uniqueness at the storage layer and report a duplicate as
// repository.ErrMemberExists.
type MemberStore interface {
	Exists(ctx context.Context, eventID, userID uint64) (bool, error)
	Insert(ctx context.Context, eventID, userID uint64) error
	Delete(ctx context.Context, eventID, userID uint64) (bool, error)
	ListByEvent(ctx context.Context, eventID uint64) ([]model.MemberSummary, error)
}

// JoinResult reports the outcome of a join. Created is false when the
// user was already a member; AlreadyJoined distinguishes that case from
// a fresh join for API responses.
type JoinResult struct {
	Created       bool
	AlreadyJoined bool
}

// Service coordinates joins and rosters. Stateless per call and safe
// for concurrent use.
type Service struct {
	events  EventStore
	users   UserStore
	members MemberStore
}

// NewService constructs a membership Service; all stores are required.
func NewService(events EventStore, users UserStore, members MemberStore) *Service {
	if events == nil || users == nil || members == nil {
		panic("nil store passed to membership.NewService")
	}
	return &Service{events: events, users: users, members: members}
}

// Join adds the user to the event. It fails with
// repository.ErrEventNotFound or repository.ErrUserNotFound when either
// side does not resolve. A duplicate join, whether caught by the
// pre-check or by the storage unique key, succeeds with
// AlreadyJoined=true and never creates a second row.
func (s *Service) Join(ctx context.Context, eventID, userID uint64) (JoinResult, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return JoinResult{}, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return JoinResult{}, err
	}

	joined, err := s.members.Exists(ctx, eventID, userID)
	if err != nil {
		return JoinResult{}, err
	}
	if joined {
		return JoinResult{Created: false, AlreadyJoined: true}, nil
	}

	if err := s.members.Insert(ctx, eventID, userID); err != nil {
		if errors.Is(err, repository.ErrMemberExists) {
			// Lost a race with a concurrent join; same outcome.
			return JoinResult{Created: false, AlreadyJoined: true}, nil
		}
		return JoinResult{}, err
	}
	return JoinResult{Created: true}, nil
}

// Leave removes the user from the event. The bool result reports
// whether a membership actually existed.
func (s *Service) Leave(ctx context.Context, eventID, userID uint64) (bool, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return false, err
	}
	return s.members.Delete(ctx, eventID, userID)
}

// Members returns the roster of an event. An event nobody joined yields
// an empty slice. The event must exist.
func (s *Service) Members(ctx context.Context, eventID uint64) ([]model.MemberSummary, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.members.ListByEvent(ctx, eventID)
}
