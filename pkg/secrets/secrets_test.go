package secrets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	dErrors "applicant-records/pkg/domain-errors"
)

func TestHashKeyAndVerifyKey(t *testing.T) {
	hash, err := HashKey("s3cret-key", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-key", hash)
	assert.True(t, IsHash(hash))

	assert.NoError(t, VerifyKey("s3cret-key", hash))

	err = VerifyKey("S3cret-key", hash)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestHashKeyRejects(t *testing.T) {
	cases := map[string]struct {
		key  string
		cost int
	}{
		"empty key":      {"", bcrypt.MinCost},
		"cost too low":   {"k", bcrypt.MinCost - 1},
		"cost too high":  {"k", bcrypt.MaxCost + 1},
		"key over 72 by": {strings.Repeat("k", 73), bcrypt.MinCost},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := HashKey(tc.key, tc.cost)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestVerifyKeyMalformedHash(t *testing.T) {
	err := VerifyKey("anything", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	assert.False(t, IsHash("not-a-bcrypt-hash"))
}

func TestGenerateKeyIsRandom(t *testing.T) {
	a, err := GenerateKey()
	require.NoError(t, err)
	b, err := GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
