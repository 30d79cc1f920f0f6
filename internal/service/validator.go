package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/hotel-reservations/internal/domain"
)

// OverlapChecker answers whether a room already has a reservation sharing a
// day with a candidate range. repo.ReservationRepo satisfies it; inside a
// write the checker must be bound to the same transaction as the insert.
type OverlapChecker interface {
	ExistsOverlap(ctx context.Context, roomID uuid.UUID, r domain.DateRange, excludeID *uuid.UUID) (bool, error)
}

// BookingValidator enforces the two booking rules, in order:
//   - check-out must not be before check-in (domain.ErrInvalidRange)
//   - the room must be free for every day of the range (domain.ErrRoomOccupied)
//
// It reads but never writes.
type BookingValidator struct {
	overlaps OverlapChecker
}

// NewBookingValidator returns a validator that scans with c.
func NewBookingValidator(c OverlapChecker) *BookingValidator {
	return &BookingValidator{overlaps: c}
}

// Validate checks r for roomID. excludeID is the reservation being updated,
// nil on create; it is left out of the overlap scan.
func (v *BookingValidator) Validate(ctx context.Context, roomID uuid.UUID, r domain.DateRange, excludeID *uuid.UUID) error {
	if !r.Valid() {
		return fmt.Errorf("%w: check_out %s is before check_in %s",
			domain.ErrInvalidRange, r.CheckOut.Format(domain.DateLayout), r.CheckIn.Format(domain.DateLayout))
	}

	busy, err := v.overlaps.ExistsOverlap(ctx, roomID, r, excludeID)
	if err != nil {
		return fmt.Errorf("service.BookingValidator.Validate: %w", err)
	}
	if busy {
		return fmt.Errorf("%w: room already booked within %s", domain.ErrRoomOccupied, r)
	}
	return nil
}
