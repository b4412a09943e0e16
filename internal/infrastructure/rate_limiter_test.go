package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitorRateLimiterBurst(t *testing.T) {
	rl := NewVisitorRateLimiter(1, 3)

	assert.True(t, rl.Allow("visitor-a"))
	assert.True(t, rl.Allow("visitor-a"))
	assert.True(t, rl.Allow("visitor-a"))
	assert.False(t, rl.Allow("visitor-a"))

	// Independent bucket per key
	assert.True(t, rl.Allow("visitor-b"))
}

func TestVisitorRateLimiterReset(t *testing.T) {
	rl := NewVisitorRateLimiter(1, 1)

	assert.True(t, rl.Allow("visitor-a"))
	assert.False(t, rl.Allow("visitor-a"))

	rl.Reset("visitor-a")
	assert.True(t, rl.Allow("visitor-a"))
}
