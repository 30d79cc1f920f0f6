package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/hotel-reservations/internal/domain"
)

// ReservationRepo defines the persistence operations for Reservations.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be tested with an in-memory fake.
type ReservationRepo interface {
	// List returns every reservation joined with its guest and room labels,
	// ordered by created_at then id.
	List(ctx context.Context) ([]domain.ReservationView, error)

	// GetView returns one reservation joined with its guest and room labels.
	// Returns domain.ErrNotFound if no reservation with that ID exists.
	GetView(ctx context.Context, id uuid.UUID) (domain.ReservationView, error)

	// GetByIDForUpdate returns the stored reservation and locks its row until
	// the surrounding transaction ends.
	// Returns domain.ErrNotFound if no reservation with that ID exists.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Reservation, error)

	// Exists reports whether a reservation with the given ID is stored.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsOverlap reports whether any reservation for roomID shares at least
	// one day with r (inclusive on both ends). excludeID, when non-nil, is left
	// out of the scan so a reservation never conflicts with itself on update.
	ExistsOverlap(ctx context.Context, roomID uuid.UUID, r domain.DateRange, excludeID *uuid.UUID) (bool, error)

	// Create inserts a new reservation and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	// Returns domain.ErrRoomOccupied if the no-overlap constraint rejects it.
	Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error)

	// Update overwrites the mutable fields of an existing reservation.
	// Returns domain.ErrNotFound if no reservation with that ID exists and
	// domain.ErrRoomOccupied if the no-overlap constraint rejects it.
	Update(ctx context.Context, res domain.Reservation) (domain.Reservation, error)

	// Delete removes a reservation by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgReservationRepo is the Postgres implementation of ReservationRepo.
type pgReservationRepo struct {
	db db
}

// NewReservationRepo constructs a ReservationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool for reads and a pgx.Tx (via TxRunner) for
// writes; in tests pass a pgx.Tx for rollback isolation.
func NewReservationRepo(db db) ReservationRepo {
	return &pgReservationRepo{db: db}
}

const reservationColumns = `id, guest_id, room_id, check_in, check_out, total_price, status, created_at, updated_at`

const viewSelect = `
		SELECT r.id, r.guest_id, g.first_name, g.last_name, r.room_id, rm.number,
		       r.check_in, r.check_out, r.total_price, r.status, r.created_at, r.updated_at
		FROM reservations r
		JOIN guests g ON g.id = r.guest_id
		JOIN rooms rm ON rm.id = r.room_id`

func (r *pgReservationRepo) List(ctx context.Context) ([]domain.ReservationView, error) {
	q := viewSelect + `
		ORDER BY r.created_at, r.id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.List: %w", err)
	}
	defer rows.Close()

	var views []domain.ReservationView
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ReservationRepo.List: scan: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.List: rows: %w", err)
	}
	return views, nil
}

func (r *pgReservationRepo) GetView(ctx context.Context, id uuid.UUID) (domain.ReservationView, error) {
	q := viewSelect + `
		WHERE r.id = @id`

	v, err := scanView(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("repo.ReservationRepo.GetView: %w", err)
	}
	return v, nil
}

func (r *pgReservationRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (domain.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = @id
		FOR UPDATE`

	res, err := scanReservation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.GetByIDForUpdate: %w", err)
	}
	return res, nil
}

func (r *pgReservationRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = @id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.ReservationRepo.Exists: %w", err)
	}
	return exists, nil
}

// ExistsOverlap evaluates a.check_in <= new.check_out AND a.check_out >= new.check_in,
// the same predicate as domain.DateRange.Overlaps.
func (r *pgReservationRepo) ExistsOverlap(ctx context.Context, roomID uuid.UUID, dr domain.DateRange, excludeID *uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM reservations
			WHERE room_id  = @room_id
			  AND check_in  <= @check_out
			  AND check_out >= @check_in
			  AND (@exclude_id::uuid IS NULL OR id <> @exclude_id::uuid)
		)`

	args := pgx.NamedArgs{
		"room_id":    roomID,
		"check_in":   dr.CheckIn,
		"check_out":  dr.CheckOut,
		"exclude_id": excludeID, // nil becomes NULL
	}

	var exists bool
	if err := r.db.QueryRow(ctx, q, args).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.ReservationRepo.ExistsOverlap: %w", err)
	}
	return exists, nil
}

func (r *pgReservationRepo) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	const q = `
		INSERT INTO reservations (guest_id, room_id, check_in, check_out, total_price, status)
		VALUES (@guest_id, @room_id, @check_in, @check_out, @total_price, @status)
		RETURNING ` + reservationColumns

	result, err := scanReservation(r.db.QueryRow(ctx, q, writeArgs(res)))
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgReservationRepo) Update(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	const q = `
		UPDATE reservations
		SET guest_id    = @guest_id,
		    room_id     = @room_id,
		    check_in    = @check_in,
		    check_out   = @check_out,
		    total_price = @total_price,
		    status      = @status,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + reservationColumns

	args := writeArgs(res)
	args["id"] = res.ID

	result, err := scanReservation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM reservations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ReservationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ReservationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func writeArgs(res domain.Reservation) pgx.NamedArgs {
	dr := res.Range()
	return pgx.NamedArgs{
		"guest_id":    res.GuestID,
		"room_id":     res.RoomID,
		"check_in":    dr.CheckIn,
		"check_out":   dr.CheckOut,
		"total_price": res.TotalPrice,
		"status":      res.Status,
	}
}

// scanReservation maps a row selected with reservationColumns into a
// domain.Reservation, translating driver errors via translate.
func scanReservation(s scanner) (domain.Reservation, error) {
	var (
		res               domain.Reservation
		id, guest, room   pgtype.UUID
		checkIn, checkOut pgtype.Date
	)

	err := s.Scan(&id, &guest, &room, &checkIn, &checkOut, &res.TotalPrice, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return domain.Reservation{}, translate(err)
	}

	res.ID = uuid.UUID(id.Bytes)
	res.GuestID = uuid.UUID(guest.Bytes)
	res.RoomID = uuid.UUID(room.Bytes)
	res.CheckIn = checkIn.Time
	res.CheckOut = checkOut.Time
	return res, nil
}

func scanView(s scanner) (domain.ReservationView, error) {
	var (
		v                   domain.ReservationView
		id, guest, room     pgtype.UUID
		checkIn, checkOut   pgtype.Date
		firstName, lastName string
	)

	err := s.Scan(&id, &guest, &firstName, &lastName, &room, &v.RoomNumber,
		&checkIn, &checkOut, &v.TotalPrice, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return domain.ReservationView{}, translate(err)
	}

	v.ID = uuid.UUID(id.Bytes)
	v.GuestID = uuid.UUID(guest.Bytes)
	v.GuestFullName = domain.Guest{FirstName: firstName, LastName: lastName}.FullName()
	v.RoomID = uuid.UUID(room.Bytes)
	v.CheckIn = checkIn.Time
	v.CheckOut = checkOut.Time
	return v, nil
}
