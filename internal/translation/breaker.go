package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker stops calling a failing service after repeated errors
type Breaker struct {
	client Client
	cb     *gobreaker.CircuitBreaker
}

// NewBreaker wraps client in a circuit breaker that opens after maxFailures
// consecutive errors and lets one probe through after cooldown
func NewBreaker(client Client, maxFailures uint32, cooldown time.Duration) *Breaker {
	if maxFailures == 0 {
		maxFailures = 3
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}

	settings := gobreaker.Settings{
		Name:        client.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("translation circuit breaker changed state", "service", name, "from", from.String(), "to", to.String())
		},
		// A cancelled run says nothing about the health of the service
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &Breaker{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(settings),
	}
}

// Translate forwards to the wrapped client unless the breaker is open
func (b *Breaker) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.client.Translate(ctx, text, targetLanguage)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%s unavailable: %w", b.client.Name(), err)
		}
		return "", err
	}
	return out.(string), nil
}

// Name returns the wrapped provider name
func (b *Breaker) Name() string {
	return b.client.Name()
}

// State returns the current breaker state
func (b *Breaker) State() string {
	return b.cb.State().String()
}
