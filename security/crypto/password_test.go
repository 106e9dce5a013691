package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, ComparePassword(hash, "secret123"))
	assert.False(t, ComparePassword(hash, "secret124"))
	assert.False(t, ComparePassword("not-a-hash", "secret123"))
}

func TestHashPasswordCostFallback(t *testing.T) {
	hash, err := HashPassword("secret123", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPassword(string(make([]byte, 73)), bcrypt.MinCost)
	assert.Error(t, err)
}
