// Package repo contains all database access logic for the hotel reservations API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/hotel-reservations/internal/domain"
)

// Postgres SQLSTATE codes the repos translate into domain errors.
const (
	pgForeignKeyViolation = "23503"
	pgExclusionViolation  = "23P01"
	pgNumericOutOfRange   = "22003"
	pgCheckViolation      = "23514"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// translate maps driver errors onto domain sentinels:
//   - no rows                   -> domain.ErrNotFound
//   - exclusion violation       -> domain.ErrRoomOccupied (reservations_no_overlap)
//   - foreign key violation     -> domain.ErrNotFound (guest or room vanished)
//   - reservations_range_check  -> domain.ErrInvalidRange
//   - numeric overflow, other check violations -> domain.ErrValidation
//
// Any other error is returned unchanged.
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return domain.ErrRoomOccupied
		case pgForeignKeyViolation:
			return domain.ErrNotFound
		case pgCheckViolation:
			if pgErr.ConstraintName == "reservations_range_check" {
				return domain.ErrInvalidRange
			}
			return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.Message)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.Message)
		}
	}
	return err
}
