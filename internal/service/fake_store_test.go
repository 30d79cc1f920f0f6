package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/hotel-reservations/internal/domain"
	"github.com/pkordes/hotel-reservations/internal/events"
	"github.com/pkordes/hotel-reservations/internal/repo"
)

// ---- in-memory store -------------------------------------------------------

// state is one snapshot of the fake database.
type state struct {
	guests       map[uuid.UUID]domain.Guest
	rooms        map[uuid.UUID]domain.Room
	reservations map[uuid.UUID]domain.Reservation
	order        []uuid.UUID
}

func (s *state) clone() *state {
	c := &state{
		guests:       make(map[uuid.UUID]domain.Guest, len(s.guests)),
		rooms:        make(map[uuid.UUID]domain.Room, len(s.rooms)),
		reservations: make(map[uuid.UUID]domain.Reservation, len(s.reservations)),
		order:        append([]uuid.UUID(nil), s.order...),
	}
	for k, v := range s.guests {
		c.guests[k] = v
	}
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	return c
}

// fakeDB is an in-memory stand-in for Postgres. InTx works on a copy of the
// state and swaps it in only when fn succeeds, so a failed unit of work
// leaves no trace. The mutex held across InTx plays the role of the room lock.
type fakeDB struct {
	mu         sync.Mutex
	st         *state
	overlapErr error // returned by ExistsOverlap when set
}

func newFakeDB() *fakeDB {
	return &fakeDB{st: &state{
		guests:       map[uuid.UUID]domain.Guest{},
		rooms:        map[uuid.UUID]domain.Room{},
		reservations: map[uuid.UUID]domain.Reservation{},
	}}
}

func (db *fakeDB) addGuest(first, last string) domain.Guest {
	g := domain.Guest{ID: uuid.New(), FirstName: first, LastName: last}
	db.st.guests[g.ID] = g
	return g
}

func (db *fakeDB) addRoom(number string) domain.Room {
	r := domain.Room{ID: uuid.New(), Number: number}
	db.st.rooms[r.ID] = r
	return r
}

func (db *fakeDB) count() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.st.reservations)
}

func (db *fakeDB) stored(id uuid.UUID) domain.Reservation {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.reservations[id]
}

func (db *fakeDB) InTx(ctx context.Context, fn func(ctx context.Context, s repo.Store) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	work := db.st.clone()
	if err := fn(ctx, &fakeStore{st: work, db: db}); err != nil {
		return err
	}
	db.st = work
	return nil
}

// reads returns a ReservationRepo over the committed state.
func (db *fakeDB) reads() repo.ReservationRepo {
	return &lockedReservations{db: db}
}

var _ repo.TxRunner = (*fakeDB)(nil)

type fakeStore struct {
	st *state
	db *fakeDB
}

func (s *fakeStore) Guests() repo.GuestRepo             { return fakeGuests{s.st} }
func (s *fakeStore) Rooms() repo.RoomRepo               { return fakeRooms{s.st} }
func (s *fakeStore) Reservations() repo.ReservationRepo { return &fakeReservations{st: s.st, db: s.db} }

type fakeGuests struct{ st *state }

func (f fakeGuests) GetByID(_ context.Context, id uuid.UUID) (domain.Guest, error) {
	g, ok := f.st.guests[id]
	if !ok {
		return domain.Guest{}, domain.ErrNotFound
	}
	return g, nil
}

type fakeRooms struct{ st *state }

func (f fakeRooms) GetByID(_ context.Context, id uuid.UUID) (domain.Room, error) {
	r, ok := f.st.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, nil
}

func (f fakeRooms) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	return f.GetByID(ctx, id)
}

type fakeReservations struct {
	st *state
	db *fakeDB
}

func (f *fakeReservations) view(r domain.Reservation) domain.ReservationView {
	return domain.NewReservationView(r, f.st.guests[r.GuestID], f.st.rooms[r.RoomID])
}

func (f *fakeReservations) List(_ context.Context) ([]domain.ReservationView, error) {
	var out []domain.ReservationView
	for _, id := range f.st.order {
		out = append(out, f.view(f.st.reservations[id]))
	}
	return out, nil
}

func (f *fakeReservations) GetView(_ context.Context, id uuid.UUID) (domain.ReservationView, error) {
	r, ok := f.st.reservations[id]
	if !ok {
		return domain.ReservationView{}, domain.ErrNotFound
	}
	return f.view(r), nil
}

func (f *fakeReservations) GetByIDForUpdate(_ context.Context, id uuid.UUID) (domain.Reservation, error) {
	r, ok := f.st.reservations[id]
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeReservations) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.st.reservations[id]
	return ok, nil
}

func (f *fakeReservations) ExistsOverlap(_ context.Context, roomID uuid.UUID, dr domain.DateRange, excludeID *uuid.UUID) (bool, error) {
	if f.db != nil && f.db.overlapErr != nil {
		return false, f.db.overlapErr
	}
	for id, r := range f.st.reservations {
		if r.RoomID != roomID || (excludeID != nil && id == *excludeID) {
			continue
		}
		if r.Range().Overlaps(dr) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservations) Create(_ context.Context, r domain.Reservation) (domain.Reservation, error) {
	now := time.Now().UTC()
	r.ID = uuid.New()
	r.CreatedAt, r.UpdatedAt = now, now
	f.st.reservations[r.ID] = r
	f.st.order = append(f.st.order, r.ID)
	return r, nil
}

func (f *fakeReservations) Update(_ context.Context, r domain.Reservation) (domain.Reservation, error) {
	old, ok := f.st.reservations[r.ID]
	if !ok {
		return domain.Reservation{}, domain.ErrNotFound
	}
	r.CreatedAt = old.CreatedAt
	r.UpdatedAt = time.Now().UTC()
	f.st.reservations[r.ID] = r
	return r, nil
}

func (f *fakeReservations) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.st.reservations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.st.reservations, id)
	for i, v := range f.st.order {
		if v == id {
			f.st.order = append(f.st.order[:i], f.st.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ repo.ReservationRepo = (*fakeReservations)(nil)

// lockedReservations serves reads against the committed state.
type lockedReservations struct {
	db *fakeDB
}

func (l *lockedReservations) committed() *fakeReservations {
	return &fakeReservations{st: l.db.st}
}

func (l *lockedReservations) List(ctx context.Context) ([]domain.ReservationView, error) {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()
	return l.committed().List(ctx)
}

func (l *lockedReservations) GetView(ctx context.Context, id uuid.UUID) (domain.ReservationView, error) {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()
	return l.committed().GetView(ctx, id)
}

func (l *lockedReservations) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Reservation, error) {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()
	return l.committed().GetByIDForUpdate(ctx, id)
}

func (l *lockedReservations) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()
	return l.committed().Exists(ctx, id)
}

func (l *lockedReservations) ExistsOverlap(ctx context.Context, roomID uuid.UUID, dr domain.DateRange, excludeID *uuid.UUID) (bool, error) {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()
	return l.committed().ExistsOverlap(ctx, roomID, dr, excludeID)
}

func (l *lockedReservations) Create(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()
	return l.committed().Create(ctx, r)
}

func (l *lockedReservations) Update(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()
	return l.committed().Update(ctx, r)
}

func (l *lockedReservations) Delete(ctx context.Context, id uuid.UUID) error {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()
	return l.committed().Delete(ctx, id)
}

// ---- publisher -------------------------------------------------------------

// recordingPublisher captures published events and can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ReservationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

// blockingPublisher holds every Publish until release is closed, then reports
// the state of the context it was given on seen.
type blockingPublisher struct {
	release chan struct{}
	seen    chan error
}

func (p *blockingPublisher) Publish(ctx context.Context, _ events.ReservationEvent) error {
	<-p.release
	p.seen <- ctx.Err()
	return nil
}
