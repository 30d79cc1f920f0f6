// Package events publishes reservation lifecycle events after a write commits.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/hotel-reservations/internal/domain"
)

// Type names a reservation lifecycle event. It doubles as the event-type header.
type Type string

const (
	ReservationCreated Type = "reservation.created"
	ReservationUpdated Type = "reservation.updated"
	ReservationDeleted Type = "reservation.deleted"
)

// ReservationEvent is the JSON payload written to the event stream.
// Deleted events carry only the reservation id.
type ReservationEvent struct {
	ID            uuid.UUID  `json:"event_id"`
	Type          Type       `json:"type"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	GuestID       *uuid.UUID `json:"guest_id,omitempty"`
	RoomID        *uuid.UUID `json:"room_id,omitempty"`
	CheckIn       string     `json:"check_in,omitempty"`
	CheckOut      string     `json:"check_out,omitempty"`
	Status        string     `json:"status,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// Created builds the event for a newly committed reservation.
func Created(v domain.ReservationView) ReservationEvent {
	return fromView(ReservationCreated, v)
}

// Updated builds the event for a committed update.
func Updated(v domain.ReservationView) ReservationEvent {
	return fromView(ReservationUpdated, v)
}

// Deleted builds the event for a committed delete.
func Deleted(id uuid.UUID) ReservationEvent {
	return ReservationEvent{
		ID:            uuid.New(),
		Type:          ReservationDeleted,
		ReservationID: id,
		OccurredAt:    time.Now().UTC(),
	}
}

func fromView(t Type, v domain.ReservationView) ReservationEvent {
	guestID, roomID := v.GuestID, v.RoomID
	return ReservationEvent{
		ID:            uuid.New(),
		Type:          t,
		ReservationID: v.ID,
		GuestID:       &guestID,
		RoomID:        &roomID,
		CheckIn:       v.CheckIn.Format(domain.DateLayout),
		CheckOut:      v.CheckOut.Format(domain.DateLayout),
		Status:        v.Status,
		OccurredAt:    time.Now().UTC(),
	}
}
