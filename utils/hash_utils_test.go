package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptVerifier(t *testing.T) {
	verifier := BcryptVerifier{}

	hashed, err := verifier.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)

	assert.True(t, verifier.Verify("secret123", hashed))
	assert.False(t, verifier.Verify("wrong", hashed))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("secret123", "not-a-bcrypt-hash"))
}

func TestPlaintextVerifier(t *testing.T) {
	verifier := PlaintextVerifier{}

	hashed, err := verifier.Hash("secret123")
	require.NoError(t, err)
	assert.Equal(t, "secret123", hashed)

	assert.True(t, verifier.Verify("secret123", "secret123"))
	assert.False(t, verifier.Verify("wrong", "secret123"))
}
