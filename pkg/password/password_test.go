package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	out, err := Generate(16)
	require.NoError(t, err)
	assert.Len(t, out, 16)
	for _, r := range out {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
	}
}

func TestGenerateDefaultsLength(t *testing.T) {
	out, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, out, DefaultLength)

	out, err = Generate(-3)
	require.NoError(t, err)
	assert.Len(t, out, DefaultLength)
}

func TestGenerateVaries(t *testing.T) {
	a, err := Generate(DefaultLength)
	require.NoError(t, err)
	b, err := Generate(DefaultLength)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashVerifyRoundtrip(t *testing.T) {
	hash, err := Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, Verify("secret123", hash))
	assert.False(t, Verify("secret124", hash))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("secret123")
	require.NoError(t, err)
	second, err := Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.True(t, Verify("secret123", first))
	assert.True(t, Verify("secret123", second))
}

func TestVerifyIsTotal(t *testing.T) {
	assert.False(t, Verify("anything", ""))
	assert.False(t, Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, Verify("", ""))
}
