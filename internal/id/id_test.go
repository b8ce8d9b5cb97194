package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("user")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "user-"), "ID should carry its prefix: %s", got)
	// prefix + "-" + 21-char NanoID
	assert.Len(t, got, len("user")+1+21)
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		got, err := Generate("tkt")
		require.NoError(t, err)
		assert.False(t, seen[got], "duplicate ID generated: %s", got)
		seen[got] = true
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		got := MustGenerate("book")
		assert.True(t, strings.HasPrefix(got, "book-"))
	})
}
