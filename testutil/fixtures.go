package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/hotel-reservations/internal/domain"
)

// queryRower is satisfied by *pgxpool.Pool and pgx.Tx.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InsertGuest stores a guest with a random document id and returns it.
// Guests are managed outside the API, so tests seed them with raw SQL.
func InsertGuest(t *testing.T, db queryRower, firstName, lastName string) domain.Guest {
	t.Helper()

	g := domain.Guest{
		FirstName:  firstName,
		LastName:   lastName,
		DocumentID: uuid.NewString(),
		Email:      "guest@example.com",
	}
	const q = `
		INSERT INTO guests (first_name, last_name, document_id, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := db.QueryRow(context.Background(), q, g.FirstName, g.LastName, g.DocumentID, g.Email).Scan(&g.ID); err != nil {
		t.Fatalf("testutil.InsertGuest: %v", err)
	}
	return g
}

// InsertRoom stores a room with the given number and returns it.
func InsertRoom(t *testing.T, db queryRower, number string) domain.Room {
	t.Helper()

	r := domain.Room{Number: number}
	const q = `INSERT INTO rooms (number) VALUES ($1) RETURNING id`
	if err := db.QueryRow(context.Background(), q, number).Scan(&r.ID); err != nil {
		t.Fatalf("testutil.InsertRoom: %v", err)
	}
	return r
}
