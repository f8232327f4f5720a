package password_test

import (
	"testing"

	"steelorders/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := password.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	require.NoError(t, h.Compare(hash, "correct horse"))
	require.ErrorIs(t, h.Compare(hash, "battery staple"), password.ErrMismatch)
	require.Error(t, h.Compare("not-a-hash", "correct horse"))
}

func TestNewBcryptHasher_FallsBackToDefaultCost(t *testing.T) {
	hash, err := password.NewBcryptHasher(0).Hash("secret-password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, password.DefaultCost, cost)
}
