package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"scribe/config"
)

func newTestHasher() *bcryptHasher {
	return NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
	}).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, hasher.Check("s3cret-password", hash))
	assert.False(t, hasher.Check("wrong-password", hash))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("same-password", first))
	assert.True(t, hasher.Check("same-password", second))
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := newTestHasher()

	assert.False(t, hasher.Check("password", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("password", ""))
}

func TestNewBcryptHasher_DefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{}).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher()

	assert.NoError(t, hasher.ValidatePasswordStrength("long-enough-pass"))

	err := hasher.ValidatePasswordStrength("short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")

	err = hasher.ValidatePasswordStrength(strings.Repeat("x", 73))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 72 characters")
}

func TestBcryptHasher_ConfiguredLengthBounds(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{
		PasswordStrength: &config.PasswordStrengthConfig{MinLength: 12, MaxLength: 20},
	}).(*bcryptHasher)

	assert.Error(t, hasher.ValidatePasswordStrength("elevenchars"))
	assert.NoError(t, hasher.ValidatePasswordStrength("twelve-chars"))
	assert.Error(t, hasher.ValidatePasswordStrength("twenty-one-characters"))
}
