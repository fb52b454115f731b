package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_SaltsEveryCall(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("s3cret")
	require.NoError(t, err)
	b, err := h.Hash("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "s3cret")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a), []byte("s3cret")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(b), []byte("s3cret")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(a), []byte("wrong")))
}

func TestNewBcryptHasher_Cost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(1).Cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).Cost)
	assert.Equal(t, 12, NewBcryptHasher(12).Cost)

	hashed, err := NewBcryptHasher(bcrypt.MinCost).Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
