package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, Verify("correct horse battery staple", hash))
	assert.False(t, Verify("wrong password", hash))
}

func TestHashProducesDistinctOpaqueValues(t *testing.T) {
	// bcrypt salts every hash, so the same input never yields the same output
	first, err := Hash("secret123")
	require.NoError(t, err)
	second, err := Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify("secret123", first))
	assert.True(t, Verify("secret123", second))
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	_, err := Hash("")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestVerifyRejectsGarbageHash(t *testing.T) {
	assert.False(t, Verify("anything", "not-a-bcrypt-hash"))
}
