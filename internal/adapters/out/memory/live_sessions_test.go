package memory_test

import (
	"testing"

	"dispatch/internal/adapters/out/memory"

	"github.com/stretchr/testify/assert"
)

func TestLiveSessions(t *testing.T) {
	sessions := memory.NewLiveSessions()
	assert.False(t, sessions.IsLive("D-0001"))

	sessions.Acquire("D-0001")
	sessions.Acquire("D-0001")
	sessions.Release("D-0001")
	assert.True(t, sessions.IsLive("D-0001"), "one session is still open")

	sessions.Release("D-0001")
	assert.False(t, sessions.IsLive("D-0001"))

	sessions.Release("D-0001")
	assert.False(t, sessions.IsLive("D-0001"))
}
