package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/hotel-reservations/internal/domain"
)

// RoomRepo resolves rooms by id.
type RoomRepo interface {
	// GetByID returns domain.ErrNotFound if no room with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Room, error)

	// GetByIDForUpdate is GetByID plus a row lock held until the surrounding
	// transaction ends. Every reservation write locks its target room first,
	// which serializes writers for the same room.
	// Only meaningful when the repo is backed by a pgx.Tx.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Room, error)
}

type pgRoomRepo struct {
	db db
}

// NewRoomRepo constructs a RoomRepo backed by the provided db connection.
func NewRoomRepo(db db) RoomRepo {
	return &pgRoomRepo{db: db}
}

func (r *pgRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	const q = `SELECT id, number FROM rooms WHERE id = @id`

	room, err := scanRoom(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.GetByID: %w", err)
	}
	return room, nil
}

func (r *pgRoomRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	const q = `SELECT id, number FROM rooms WHERE id = @id FOR UPDATE`

	room, err := scanRoom(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Room{}, fmt.Errorf("repo.RoomRepo.GetByIDForUpdate: %w", err)
	}
	return room, nil
}

func scanRoom(s scanner) (domain.Room, error) {
	var (
		room domain.Room
		id   pgtype.UUID
	)
	if err := s.Scan(&id, &room.Number); err != nil {
		return domain.Room{}, translate(err)
	}
	room.ID = uuid.UUID(id.Bytes)
	return room, nil
}
