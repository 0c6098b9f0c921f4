package netbox

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
)

const (
	defaultRateLimitRPS = 20
	minRateLimitRPS     = 1
	maxRateLimitRPS     = 100
)

// Limiter spaces out API requests issued by one client.
type Limiter struct {
	limiter *rate.Limiter
	rps     int
	logger  ports.Logger
}

// NewLimiter returns a limiter allowing rps requests per second. Zero selects
// the default; values outside the valid range fall back to it with a warning.
func NewLimiter(rps int, logger ports.Logger) *Limiter {
	limitValue := defaultRateLimitRPS
	if rps >= minRateLimitRPS && rps <= maxRateLimitRPS {
		limitValue = rps
	} else if rps != 0 {
		logger.Warnf(context.Background(), "Invalid inventory API RPS configured (%d), using default %d RPS. Valid range: %d-%d.", rps, defaultRateLimitRPS, minRateLimitRPS, maxRateLimitRPS)
	}
	logger.Debugf(context.Background(), "Initialized inventory API rate limiter: %d RPS", limitValue)
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(limitValue), limitValue),
		rps:     limitValue,
		logger:  logger,
	}
}

func (l *Limiter) RPS() int {
	return l.rps
}

func (l *Limiter) Wait(ctx context.Context) error {
	err := l.limiter.Wait(ctx)
	if err != nil {
		if ctx.Err() == nil {
			l.logger.Warnf(ctx, "Error waiting for inventory API rate limiter: %v", err)
		}
		return err
	}
	return nil
}
