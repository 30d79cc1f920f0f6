package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hotel-reservations/internal/domain"
	"github.com/pkordes/hotel-reservations/internal/repo"
	"github.com/pkordes/hotel-reservations/testutil"
)

func TestGuestRepo_GetByID(t *testing.T) {
	tx := newTestTx(t)
	seeded := testutil.InsertGuest(t, tx, "Luis", "Mora")

	got, err := repo.NewGuestRepo(tx).GetByID(context.Background(), seeded.ID)

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, "Luis Mora", got.FullName())
}

func TestGuestRepo_GetByID_NotFound(t *testing.T) {
	_, err := repo.NewGuestRepo(newTestTx(t)).GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomRepo_GetByIDForUpdate(t *testing.T) {
	tx := newTestTx(t)
	seeded := testutil.InsertRoom(t, tx, "12B")
	r := repo.NewRoomRepo(tx)

	got, err := r.GetByIDForUpdate(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "12B", got.Number)

	_, err = r.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
