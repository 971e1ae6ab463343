package membership

import (
	"context"
	"errors"
	"testing"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/repository"
)

type pair struct{ event, user uint64 }

type fakeStores struct {
	events  map[uint64]*model.Event
	users   map[uint64]*model.User
	rows    map[pair]bool
	// raceOnInsert simulates a concurrent join that wins between the
	// existence check and the insert.
	raceOnInsert bool
}

func newFakes() *fakeStores {
	return &fakeStores{
		events: map[uint64]*model.Event{1: {ID: 1, Title: "open mat", ClassID: 1}},
		users:  map[uint64]*model.User{7: {ID: 7, Name: "Asha", Email: "asha@example.com"}},
		rows:   map[pair]bool{},
	}
}

func (f *fakeStores) GetByID(_ context.Context, id uint64) (*model.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, repository.ErrEventNotFound
}

type fakeUsers struct{ f *fakeStores }

func (u fakeUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	if usr, ok := u.f.users[id]; ok {
		return usr, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStores) Exists(_ context.Context, eventID, userID uint64) (bool, error) {
	return f.rows[pair{eventID, userID}], nil
}

func (f *fakeStores) Insert(_ context.Context, eventID, userID uint64) error {
	p := pair{eventID, userID}
	if f.rows[p] || f.raceOnInsert {
		return repository.ErrMemberExists
	}
	f.rows[p] = true
	return nil
}

func (f *fakeStores) Delete(_ context.Context, eventID, userID uint64) (bool, error) {
	p := pair{eventID, userID}
	if !f.rows[p] {
		return false, nil
	}
	delete(f.rows, p)
	return true, nil
}

func (f *fakeStores) ListByEvent(_ context.Context, eventID uint64) ([]model.MemberSummary, error) {
	out := []model.MemberSummary{}
	for p := range f.rows {
		if p.event == eventID {
			u := f.users[p.user]
			out = append(out, model.MemberSummary{UserID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	return out, nil
}

func newService(f *fakeStores) *Service {
	return NewService(f, fakeUsers{f}, f)
}

func TestJoinIdempotent(t *testing.T) {
	f := newFakes()
	s := newService(f)
	ctx := context.Background()

	res, err := s.Join(ctx, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Created || res.AlreadyJoined {
		t.Fatalf("first join = %+v, want created", res)
	}

	res, err = s.Join(ctx, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if res.Created || !res.AlreadyJoined {
		t.Fatalf("second join = %+v, want already joined", res)
	}

	if len(f.rows) != 1 {
		t.Errorf("membership rows = %d, want 1", len(f.rows))
	}
}

func TestJoinUnknownEventAndUser(t *testing.T) {
	s := newService(newFakes())
	ctx := context.Background()

	if _, err := s.Join(ctx, 99, 7); !errors.Is(err, repository.ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
	if _, err := s.Join(ctx, 1, 99); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestJoinLosesInsertRace(t *testing.T) {
	f := newFakes()
	f.raceOnInsert = true
	s := newService(f)

	res, err := s.Join(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("a lost duplicate race must not surface an error, got %v", err)
	}
	if res.Created || !res.AlreadyJoined {
		t.Errorf("result = %+v, want already joined", res)
	}
}

func TestLeave(t *testing.T) {
	f := newFakes()
	s := newService(f)
	ctx := context.Background()

	if _, err := s.Join(ctx, 1, 7); err != nil {
		t.Fatal(err)
	}
	removed, err := s.Leave(ctx, 1, 7)
	if err != nil || !removed {
		t.Fatalf("Leave = %v, %v, want true, nil", removed, err)
	}
	removed, err = s.Leave(ctx, 1, 7)
	if err != nil || removed {
		t.Fatalf("second Leave = %v, %v, want false, nil", removed, err)
	}
}

func TestMembersEmptyRoster(t *testing.T) {
	s := newService(newFakes())

	members, err := s.Members(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 0 {
		t.Errorf("members = %v, want empty", members)
	}

	if _, err := s.Members(context.Background(), 42); !errors.Is(err, repository.ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
}
