package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/hotel-reservations/internal/domain"
)

// GuestRepo resolves guests by id. Guests are owned by another system, so
// there are no write operations here.
type GuestRepo interface {
	// GetByID returns domain.ErrNotFound if no guest with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Guest, error)
}

type pgGuestRepo struct {
	db db
}

// NewGuestRepo constructs a GuestRepo backed by the provided db connection.
func NewGuestRepo(db db) GuestRepo {
	return &pgGuestRepo{db: db}
}

func (r *pgGuestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Guest, error) {
	const q = `
		SELECT id, first_name, last_name, document_id, email, phone
		FROM guests
		WHERE id = @id`

	var (
		g   domain.Guest
		gid pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).
		Scan(&gid, &g.FirstName, &g.LastName, &g.DocumentID, &g.Email, &g.Phone)
	if err != nil {
		return domain.Guest{}, fmt.Errorf("repo.GuestRepo.GetByID: %w", translate(err))
	}
	g.ID = uuid.UUID(gid.Bytes)
	return g, nil
}
