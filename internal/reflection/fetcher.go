// Package reflection obtains the short phrase shown for each exercise state
// from a text generation provider, falling back to a fixed phrase whenever
// the provider cannot deliver one.
package reflection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"droplet/internal/breath"

	"go.uber.org/zap"
)

// FallbackPhrase is shown whenever generation fails or returns nothing.
const FallbackPhrase = "在呼吸之間，找回自己。"

// Default sampling parameters.
const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultTemperature = float32(0.8)
	DefaultTopP        = float32(0.95)
)

// ErrUnavailable covers every reason a reflection could not be generated:
// missing credential, transport or provider failure, empty response.
var ErrUnavailable = errors.New("reflection unavailable")

// Request is a single generation call.
type Request struct {
	Model       string
	Prompt      string
	Temperature float32
	TopP        float32
}

// Generator is the text generation provider.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Settings are the tunable parameters of a Fetcher. A zero Timeout means the
// call is bounded only by the caller's context.
type Settings struct {
	Model       string
	Temperature float32
	TopP        float32
	Timeout     time.Duration
}

// DefaultSettings returns the stock sampling parameters.
func DefaultSettings() Settings {
	return Settings{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
	}
}

// Fetcher implements breath.Fetcher on top of a Generator. It never returns
// an error: failures are logged and replaced by FallbackPhrase.
type Fetcher struct {
	gen    Generator
	logger *zap.Logger

	mu       sync.RWMutex
	settings Settings
}

var _ breath.Fetcher = (*Fetcher)(nil)

// NewFetcher creates a Fetcher. Empty model names fall back to DefaultModel.
func NewFetcher(gen Generator, settings Settings, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Fetcher{gen: gen, logger: logger}
	f.UpdateSettings(settings)
	return f
}

// Settings returns the parameters used for the next fetch.
func (f *Fetcher) Settings() Settings {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.settings
}

// UpdateSettings replaces the parameters used by subsequent fetches.
func (f *Fetcher) UpdateSettings(s Settings) {
	if strings.TrimSpace(s.Model) == "" {
		s.Model = DefaultModel
	}
	f.mu.Lock()
	f.settings = s
	f.mu.Unlock()
}

// Fetch returns a reflection for state, or FallbackPhrase.
func (f *Fetcher) Fetch(ctx context.Context, state breath.State) string {
	text, err := f.generate(ctx, state)
	if err != nil {
		f.logger.Warn("Using fallback reflection",
			zap.Stringer("state", state),
			zap.Error(err))
		return FallbackPhrase
	}
	return text
}

func (f *Fetcher) generate(ctx context.Context, state breath.State) (text string, err error) {
	if f.gen == nil {
		return "", fmt.Errorf("%w: no generator configured", ErrUnavailable)
	}

	s := f.Settings()
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: generator panic: %v", ErrUnavailable, r)
		}
	}()

	req := Request{
		Model:       s.Model,
		Prompt:      PromptFor(state),
		Temperature: s.Temperature,
		TopP:        s.TopP,
	}
	start := time.Now()
	raw, err := f.gen.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	text = strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	f.logger.Debug("Reflection generated",
		zap.Stringer("state", state),
		zap.String("model", req.Model),
		zap.Duration("took", time.Since(start)))
	return text, nil
}
