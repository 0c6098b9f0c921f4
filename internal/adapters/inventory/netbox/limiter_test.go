package netbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olusolaa/netbox-reconciler/internal/log"
)

func TestNewLimiterRange(t *testing.T) {
	assert.Equal(t, defaultRateLimitRPS, NewLimiter(0, log.NewNop()).RPS())
	assert.Equal(t, 5, NewLimiter(5, log.NewNop()).RPS())
	assert.Equal(t, defaultRateLimitRPS, NewLimiter(500, log.NewNop()).RPS())
	assert.Equal(t, defaultRateLimitRPS, NewLimiter(-1, log.NewNop()).RPS())
}

func TestLimiterWaitCanceled(t *testing.T) {
	l := NewLimiter(1, log.NewNop())
	assert.NoError(t, l.Wait(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.Error(t, l.Wait(ctx))
}
