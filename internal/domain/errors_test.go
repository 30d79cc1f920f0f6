package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/hotel-reservations/internal/domain"
)

func TestNotFound_WrapsOnlyNotFound(t *testing.T) {
	repoErr := fmt.Errorf("repo.GuestRepo.GetByID: %w", domain.ErrNotFound)

	err := domain.NotFound(repoErr, "guest", "42")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	var nf *domain.NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "guest 42 not found", nf.Error())

	other := errors.New("connection reset")
	assert.Same(t, other, domain.NotFound(other, "guest", "42"))
}
