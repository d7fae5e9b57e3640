package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast
func testHasher() *Argon2Hasher {
	return NewArgon2Hasher(Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1})
}

func TestArgon2HasherHash(t *testing.T) {
	h := testHasher()

	hash, err := h.Hash("password123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.Len(t, strings.Split(hash, "$"), 6)
	assert.NotContains(t, hash, "password123")

	other, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salt must be random")
}

func TestArgon2HasherVerify(t *testing.T) {
	h := testHasher()

	hash, err := h.Hash("password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct password", "password123", true},
		{"wrong password", "wrongpassword", false},
		{"empty password", "", false},
		{"similar password", "password124", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify(tt.password, hash)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestArgon2HasherVerifyUsesStoredParams(t *testing.T) {
	hash, err := NewArgon2Hasher(Argon2Params{Memory: 2048, Iterations: 2, Parallelism: 1}).Hash("secret")
	require.NoError(t, err)

	ok, err := testHasher().Verify("secret", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2HasherVerifyRejectsMalformed(t *testing.T) {
	h := testHasher()

	for _, bad := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
	} {
		ok, err := h.Verify("secret", bad)
		assert.Error(t, err, bad)
		assert.False(t, ok)
	}
}
