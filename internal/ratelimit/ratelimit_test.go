package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow_BurstThenDeny(t *testing.T) {
	// One request per second, burst of 2.
	krl := New(1, 2)

	assert.True(t, krl.Allow("1.2.3.4"))
	assert.True(t, krl.Allow("1.2.3.4"))
	assert.False(t, krl.Allow("1.2.3.4"))
}

func TestAllow_IndependentKeys(t *testing.T) {
	krl := New(1, 1)

	assert.True(t, krl.Allow("1.2.3.4"))
	assert.False(t, krl.Allow("1.2.3.4"))

	// A different key has its own bucket.
	assert.True(t, krl.Allow("5.6.7.8"))
}
