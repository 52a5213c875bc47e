package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("sup3rsecret")
	require.NoError(t, err)
	assert.NotEqual(t, "sup3rsecret", hash)

	assert.True(t, CheckPassword(hash, "sup3rsecret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "sup3rsecret"))
}
