// Package inference sends prompts to a large-language-model service and
// returns the completion text. The provider is chosen once from
// configuration and injected into every pipeline stage.
package inference

import (
	"context"
	"fmt"
)

// Client sends a prompt and returns the completion text. Implementations
// return a *TransportError when the service cannot be reached or rejects the
// request.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider names a supported inference vendor.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// New builds the configured provider client, wrapped for pacing when
// cfg.Delay is set. cfg is expected to be finalized. The returned close
// function releases provider resources.
func New(ctx context.Context, cfg Config) (Client, func() error, error) {
	var (
		client Client
		closer = func() error { return nil }
	)

	switch Provider(cfg.Provider) {
	case ProviderAnthropic:
		client = NewAnthropic(cfg)
	case ProviderGemini:
		g, err := NewGemini(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		client, closer = g, g.Close
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	if d := cfg.DelayDuration(); d > 0 {
		client = NewPaced(client, d)
	}

	return client, closer, nil
}
