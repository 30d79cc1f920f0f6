package domain

import "github.com/google/uuid"

// Room is a bookable hotel room. Number is a display label such as "101"
// and is kept as text because hotels use values like "12B".
type Room struct {
	ID     uuid.UUID
	Number string
}
