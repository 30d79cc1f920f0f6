package domain

import "errors"

// ErrNotFound is returned by repo and service functions when a guest, room,
// or reservation identifier does not resolve to a stored record.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a business
// rule that is not about dates or occupancy (e.g. negative price).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange is returned when check-out falls before check-in.
// Handlers should map this to HTTP 400.
var ErrInvalidRange = errors.New("invalid date range")

// ErrRoomOccupied is returned when the requested range overlaps a reservation
// already stored for the same room. The caller may retry with other dates.
// Handlers should map this to HTTP 409.
var ErrRoomOccupied = errors.New("room occupied")

// NotFoundError names the record that failed to resolve. It matches
// ErrNotFound under errors.Is, so callers that only need the category can
// ignore the detail.
type NotFoundError struct {
	Resource string // "guest", "room", or "reservation"
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " " + e.ID + " not found"
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound wraps err (normally from a repo) as a NotFoundError for resource
// when err is ErrNotFound; any other error is returned unchanged.
func NotFound(err error, resource, id string) error {
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}
