package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("Passw0rd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	ok, err := Verify("Passw0rd", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("wrong", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("Passw0rd")
	require.NoError(t, err)
	second, err := Hash("Passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!$aGFzaA",
	}
	for _, encoded := range cases {
		_, err := Verify("Passw0rd", encoded)
		assert.Error(t, err, encoded)
	}
}
