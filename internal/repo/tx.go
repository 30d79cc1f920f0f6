package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Store groups the repos that share one connection or transaction.
type Store interface {
	Guests() GuestRepo
	Rooms() RoomRepo
	Reservations() ReservationRepo
}

type pgStore struct {
	db db
}

// NewStore builds a Store whose repos all run on db.
func NewStore(db db) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Guests() GuestRepo             { return NewGuestRepo(s.db) }
func (s *pgStore) Rooms() RoomRepo               { return NewRoomRepo(s.db) }
func (s *pgStore) Reservations() ReservationRepo { return NewReservationRepo(s.db) }

// TxRunner runs a unit of work inside one database transaction.
type TxRunner interface {
	// InTx begins a transaction, passes fn a Store bound to it, and commits if
	// fn returns nil. Any error from fn, a cancelled ctx, or the timeout rolls
	// everything back. fn's error is returned wrapped, so errors.Is still works.
	InTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

// beginner is satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx. On a pgx.Tx
// Begin opens a savepoint, which lets integration tests nest a TxRunner
// inside their rolled-back test transaction.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pgTxRunner struct {
	db      beginner
	timeout time.Duration
}

// NewTxRunner returns a TxRunner over db. timeout bounds each transaction;
// zero means the caller's context is the only limit.
func NewTxRunner(db beginner, timeout time.Duration) TxRunner {
	return &pgTxRunner{db: db, timeout: timeout}
}

func (r *pgTxRunner) InTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, NewStore(tx))
	})
	if err != nil {
		return fmt.Errorf("repo.TxRunner.InTx: %w", err)
	}
	return nil
}
