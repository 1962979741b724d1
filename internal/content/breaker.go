package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
)

// BreakerProvider stops calling a failing provider for a cool-down period.
// Each operation has its own circuit, so failing speech or images never
// block definitions. It never retries; every call is attempted at most once.
type BreakerProvider struct {
	next     Provider
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps next in per-operation circuit breakers that open
// after maxFailures consecutive failures and let one trial call through after timeout
func NewBreakerProvider(next Provider, maxFailures uint32, timeout time.Duration, logger *slog.Logger) *BreakerProvider {
	if maxFailures == 0 {
		maxFailures = 5
	}
	if logger == nil {
		logger = slog.Default()
	}

	b := &BreakerProvider{next: next, breakers: make(map[string]*gobreaker.CircuitBreaker)}
	for _, op := range []string{OpDefinition, OpImage, OpStory, OpSpeech} {
		b.breakers[op] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        next.Name() + "/" + op,
			MaxRequests: 1,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			IsSuccessful: countsAsSuccess,
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("content provider circuit changed",
					slog.String("circuit", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		})
	}
	return b
}

// countsAsSuccess keeps capability gaps and caller cancellation out of the
// failure count; neither says anything about the health of the service.
func countsAsSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, ErrUnsupported) ||
		errors.Is(err, context.Canceled)
}

// State returns the breaker state of one operation (OpDefinition, OpImage,
// OpStory or OpSpeech)
func (b *BreakerProvider) State(op string) gobreaker.State {
	cb, ok := b.breakers[op]
	if !ok {
		return gobreaker.StateClosed
	}
	return cb.State()
}

func (b *BreakerProvider) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	out, err := b.breakers[op].Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out, err
}

func (b *BreakerProvider) Structured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	out, err := b.execute(OpDefinition, func() (interface{}, error) {
		return b.next.Structured(ctx, prompt, schema)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (b *BreakerProvider) Image(ctx context.Context, prompt string) (*image.Image, error) {
	out, err := b.execute(OpImage, func() (interface{}, error) {
		return b.next.Image(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}
	return out.(*image.Image), nil
}

func (b *BreakerProvider) Text(ctx context.Context, prompt string) (string, error) {
	out, err := b.execute(OpStory, func() (interface{}, error) {
		return b.next.Text(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (b *BreakerProvider) Speech(ctx context.Context, text string, lang language.Language) ([]byte, error) {
	out, err := b.execute(OpSpeech, func() (interface{}, error) {
		return b.next.Speech(ctx, text, lang)
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

// Name returns the wrapped provider name
func (b *BreakerProvider) Name() string {
	return b.next.Name()
}

// IsAvailable reports an open definition circuit as unavailable
func (b *BreakerProvider) IsAvailable() error {
	if b.State(OpDefinition) == gobreaker.StateOpen {
		return ErrUnavailable
	}
	return b.next.IsAvailable()
}
