// Package domain contains the core data types for the hotel reservations API.
// It depends only on uuid and is imported by every other internal package
// (repo, service, handler, events).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStatus is applied when a create or update request omits the status.
const DefaultStatus = "pending"

// MaxStatusLength bounds the free-form status label.
const MaxStatusLength = 32

// MaxTotalPrice is the largest price the store can hold (NUMERIC(10,2)).
const MaxTotalPrice = 99_999_999.99

// Reservation books one room for one guest over an inclusive range of days.
// Status is an open label (pending, confirmed, cancelled, ...); no transition
// graph is enforced and every status takes part in the overlap check.
type Reservation struct {
	ID         uuid.UUID
	GuestID    uuid.UUID
	RoomID     uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	TotalPrice float64
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Range returns the reservation's stay as a DateRange.
func (r Reservation) Range() DateRange {
	return NewDateRange(r.CheckIn, r.CheckOut)
}

// ReservationInput carries the caller-supplied fields for create and update.
// The same shape is used for both; update replaces every mutable field.
type ReservationInput struct {
	GuestID    uuid.UUID
	RoomID     uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	TotalPrice float64
	Status     string
}

// Range returns the requested stay as a DateRange.
func (in ReservationInput) Range() DateRange {
	return NewDateRange(in.CheckIn, in.CheckOut)
}

// ReservationView is the read projection returned to callers: the reservation
// plus the display labels of the guest and room it references.
type ReservationView struct {
	ID            uuid.UUID
	GuestID       uuid.UUID
	GuestFullName string
	RoomID        uuid.UUID
	RoomNumber    string
	CheckIn       time.Time
	CheckOut      time.Time
	TotalPrice    float64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewReservationView joins a reservation with its resolved guest and room.
func NewReservationView(r Reservation, g Guest, room Room) ReservationView {
	return ReservationView{
		ID:            r.ID,
		GuestID:       g.ID,
		GuestFullName: g.FullName(),
		RoomID:        room.ID,
		RoomNumber:    room.Number,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		TotalPrice:    r.TotalPrice,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
