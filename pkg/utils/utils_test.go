package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCrypt(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	hashed, err := Crypt("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)
	assert.True(t, VerifyPassword("secret123", hashed))
	assert.False(t, VerifyPassword("wrong", hashed))
}

func TestTransfer(t *testing.T) {
	assert.Equal(t, int64(42), Transfer(int64(42)))
	assert.Equal(t, int64(42), Transfer(float64(42)))
	assert.Equal(t, int64(1234567890123456789), Transfer("1234567890123456789"))
	assert.Equal(t, int64(-1), Transfer("abc"))
	assert.Equal(t, int64(-1), Transfer(nil))
}

func TestGenerateVideoID(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id := GenerateVideoID()
		assert.Greater(t, id, int64(0))
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestSnowflakeNode(t *testing.T) {
	_, err := NewSnowflake(1024)
	assert.Error(t, err)

	sf, err := NewSnowflake(3)
	require.NoError(t, err)
	prev := int64(0)
	for i := 0; i < 5000; i++ {
		id := sf.GenerateID()
		require.Greater(t, id, prev)
		assert.Equal(t, int64(3), (id>>sequenceBits)&maxNode)
		prev = id
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("alice@example.com"))
	assert.True(t, IsValidEmail(" bob.smith+tag@mail.example.org "))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("a@b"))
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}
