// Package service contains the business logic for the hotel reservations API.
// Services validate inputs, enforce booking rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/hotel-reservations/internal/domain"
	"github.com/pkordes/hotel-reservations/internal/events"
	"github.com/pkordes/hotel-reservations/internal/repo"
)

// Publisher emits lifecycle events after a write commits.
type Publisher interface {
	Publish(ctx context.Context, ev events.ReservationEvent) error
}

const (
	// publishTimeout bounds one event publish. Publishing happens after the
	// response, so it does not count against the request deadline.
	publishTimeout = 10 * time.Second

	// eventQueueSize is how many committed events may wait for the broker.
	eventQueueSize = 256
)

type queuedEvent struct {
	ctx context.Context
	ev  events.ReservationEvent
}

// ReservationService manages the reservation lifecycle.
//
// Every write runs as one transaction: resolve the guest, lock the target
// room, validate dates and occupancy, then persist. Locking the room row first
// means two requests for the same room run their overlap scans one after the
// other, so at most one of two overlapping bookings can commit.
type ReservationService struct {
	reads  repo.ReservationRepo
	tx     repo.TxRunner
	events Publisher
	log    *slog.Logger

	queue   chan queuedEvent
	pending sync.WaitGroup // queued or in-flight events
}

// NewReservationService constructs a ReservationService.
// reads serves List and Get outside any transaction; tx runs every write.
// A nil pub disables events and a nil log falls back to slog.Default().
// Events are published by one background goroutine started here.
func NewReservationService(reads repo.ReservationRepo, tx repo.TxRunner, pub Publisher, log *slog.Logger) *ReservationService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}
	s := &ReservationService{
		reads:  reads,
		tx:     tx,
		events: pub,
		log:    log,
		queue:  make(chan queuedEvent, eventQueueSize),
	}
	go s.runPublisher()
	return s
}

// List returns every reservation in storage order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ReservationService) List(ctx context.Context) ([]domain.ReservationView, error) {
	views, err := s.reads.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.List: %w", err)
	}
	if views == nil {
		return []domain.ReservationView{}, nil
	}
	return views, nil
}

// Get returns one reservation. Returns domain.ErrNotFound if it does not exist.
func (s *ReservationService) Get(ctx context.Context, id uuid.UUID) (domain.ReservationView, error) {
	v, err := s.reads.GetView(ctx, id)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.ReservationService.Get: %w",
			domain.NotFound(err, "reservation", id.String()))
	}
	return v, nil
}

// Create books a room.
// Returns domain.ErrValidation for a bad price or status, domain.ErrNotFound
// if the guest or room does not exist, domain.ErrInvalidRange if check-out is
// before check-in, and domain.ErrRoomOccupied if the room is taken on any of
// the requested days. Nothing is stored when an error is returned.
func (s *ReservationService) Create(ctx context.Context, in domain.ReservationInput) (domain.ReservationView, error) {
	if err := normalizeInput(&in); err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.ReservationService.Create: %w", err)
	}

	var view domain.ReservationView
	err := s.tx.InTx(ctx, func(ctx context.Context, st repo.Store) error {
		guest, room, err := resolve(ctx, st, in)
		if err != nil {
			return err
		}
		if err := NewBookingValidator(st.Reservations()).Validate(ctx, room.ID, in.Range(), nil); err != nil {
			return err
		}
		created, err := st.Reservations().Create(ctx, applyInput(domain.Reservation{}, in))
		if err != nil {
			return err
		}
		view = domain.NewReservationView(created, guest, room)
		return nil
	})
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.ReservationService.Create: %w", err)
	}

	s.log.InfoContext(ctx, "reservation created",
		"reservation_id", view.ID,
		"room_id", view.RoomID,
		"guest_id", view.GuestID,
		"check_in", view.CheckIn.Format(domain.DateLayout),
		"check_out", view.CheckOut.Format(domain.DateLayout),
	)
	s.publish(ctx, events.Created(view))
	return view, nil
}

// Update replaces every mutable field of an existing reservation.
// The reservation itself is excluded from the overlap scan, so changing only
// status or price never conflicts. Errors are those of Create, plus
// domain.ErrNotFound when id does not exist. On error the stored record is unchanged.
func (s *ReservationService) Update(ctx context.Context, id uuid.UUID, in domain.ReservationInput) (domain.ReservationView, error) {
	if err := normalizeInput(&in); err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.ReservationService.Update: %w", err)
	}

	var view domain.ReservationView
	err := s.tx.InTx(ctx, func(ctx context.Context, st repo.Store) error {
		existing, err := st.Reservations().GetByIDForUpdate(ctx, id)
		if err != nil {
			return domain.NotFound(err, "reservation", id.String())
		}
		guest, room, err := resolve(ctx, st, in)
		if err != nil {
			return err
		}
		if err := NewBookingValidator(st.Reservations()).Validate(ctx, room.ID, in.Range(), &existing.ID); err != nil {
			return err
		}
		updated, err := st.Reservations().Update(ctx, applyInput(existing, in))
		if err != nil {
			return err
		}
		view = domain.NewReservationView(updated, guest, room)
		return nil
	})
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("service.ReservationService.Update: %w", err)
	}

	s.log.InfoContext(ctx, "reservation updated",
		"reservation_id", view.ID,
		"room_id", view.RoomID,
		"status", view.Status,
	)
	s.publish(ctx, events.Updated(view))
	return view, nil
}

// Delete removes a reservation permanently. Guests and rooms are untouched.
// Returns domain.ErrNotFound if the reservation does not exist.
func (s *ReservationService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.InTx(ctx, func(ctx context.Context, st repo.Store) error {
		exists, err := st.Reservations().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &domain.NotFoundError{Resource: "reservation", ID: id.String()}
		}
		return domain.NotFound(st.Reservations().Delete(ctx, id), "reservation", id.String())
	})
	if err != nil {
		return fmt.Errorf("service.ReservationService.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "reservation deleted", "reservation_id", id)
	s.publish(ctx, events.Deleted(id))
	return nil
}

// resolve loads the guest and locks the room referenced by in.
func resolve(ctx context.Context, st repo.Store, in domain.ReservationInput) (domain.Guest, domain.Room, error) {
	guest, err := st.Guests().GetByID(ctx, in.GuestID)
	if err != nil {
		return domain.Guest{}, domain.Room{}, domain.NotFound(err, "guest", in.GuestID.String())
	}
	room, err := st.Rooms().GetByIDForUpdate(ctx, in.RoomID)
	if err != nil {
		return domain.Guest{}, domain.Room{}, domain.NotFound(err, "room", in.RoomID.String())
	}
	return guest, room, nil
}

// publish queues ev for the background publisher and returns at once. The
// write has already committed, so a slow or failing broker must neither
// delay nor fail the caller. The event keeps the request's values but not its
// cancellation. When the queue is full the event is dropped and logged.
func (s *ReservationService) publish(ctx context.Context, ev events.ReservationEvent) {
	s.pending.Add(1)
	select {
	case s.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), ev: ev}:
	default:
		s.pending.Done()
		s.log.WarnContext(ctx, "event queue full, dropping reservation event",
			"event_type", ev.Type,
			"reservation_id", ev.ReservationID,
		)
	}
}

// runPublisher drains the queue in order, so events for one reservation
// reach the broker in the order their writes committed.
func (s *ReservationService) runPublisher() {
	for q := range s.queue {
		ctx, cancel := context.WithTimeout(q.ctx, publishTimeout)
		if err := s.events.Publish(ctx, q.ev); err != nil {
			s.log.WarnContext(ctx, "publish reservation event failed",
				"event_type", q.ev.Type,
				"reservation_id", q.ev.ReservationID,
				"error", err,
			)
		}
		cancel()
		s.pending.Done()
	}
}

// Wait blocks until every event queued so far has been published or has
// failed. Call it on shutdown before closing the Publisher.
func (s *ReservationService) Wait() {
	s.pending.Wait()
}

// normalizeInput applies defaults and enforces the non-date field rules.
//   - TotalPrice must be a finite number in [0, domain.MaxTotalPrice]; it is
//     rounded to whole cents, the precision it is stored with.
//   - Status is trimmed, defaults to domain.DefaultStatus, and is at most
//     domain.MaxStatusLength characters.
func normalizeInput(in *domain.ReservationInput) error {
	if math.IsNaN(in.TotalPrice) || math.IsInf(in.TotalPrice, 0) {
		return fmt.Errorf("%w: total_price must be a finite number", domain.ErrValidation)
	}
	if in.TotalPrice < 0 {
		return fmt.Errorf("%w: total_price must not be negative", domain.ErrValidation)
	}
	in.TotalPrice = math.Round(in.TotalPrice*100) / 100
	if in.TotalPrice > domain.MaxTotalPrice {
		return fmt.Errorf("%w: total_price must be at most %.2f", domain.ErrValidation, domain.MaxTotalPrice)
	}
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		in.Status = domain.DefaultStatus
	}
	if len([]rune(in.Status)) > domain.MaxStatusLength {
		return fmt.Errorf("%w: status must be at most %d characters", domain.ErrValidation, domain.MaxStatusLength)
	}
	return nil
}

// applyInput copies the request fields onto res, keeping its id and timestamps.
func applyInput(res domain.Reservation, in domain.ReservationInput) domain.Reservation {
	dr := in.Range()
	res.GuestID = in.GuestID
	res.RoomID = in.RoomID
	res.CheckIn = dr.CheckIn
	res.CheckOut = dr.CheckOut
	res.TotalPrice = in.TotalPrice
	res.Status = in.Status
	return res
}
