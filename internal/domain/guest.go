package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Guest is a person who can hold reservations.
// Guests are managed outside this service; reservations only reference them.
type Guest struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	DocumentID string
	Email      string
	Phone      string
}

// FullName is the display label used in reservation views.
func (g Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}
