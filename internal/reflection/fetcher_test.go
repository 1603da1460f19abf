package reflection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"droplet/internal/breath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeGenerator struct {
	mu       sync.Mutex
	requests []Request
	reply    string
	err      error
	panicVal any
	deadline bool
}

func (g *fakeGenerator) Generate(ctx context.Context, req Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	_, g.deadline = ctx.Deadline()
	if g.panicVal != nil {
		panic(g.panicVal)
	}
	return g.reply, g.err
}

func TestPromptFor_TwoVariants(t *testing.T) {
	assert.Equal(t, InnerPeacePrompt, PromptFor(breath.Calm))
	assert.Equal(t, EncouragementPrompt, PromptFor(breath.Anxious))
	assert.Equal(t, PromptFor(breath.Anxious), PromptFor(breath.Transition))
	assert.NotEqual(t, PromptFor(breath.Calm), PromptFor(breath.Anxious))
}

func TestFetch_BuildsRequestPerState(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	f := NewFetcher(gen, DefaultSettings(), nil)

	for _, s := range breath.States() {
		f.Fetch(context.Background(), s)
	}

	require.Len(t, gen.requests, 3)
	assert.Equal(t, EncouragementPrompt, gen.requests[0].Prompt)
	assert.Equal(t, EncouragementPrompt, gen.requests[1].Prompt)
	assert.Equal(t, InnerPeacePrompt, gen.requests[2].Prompt)
	for _, req := range gen.requests {
		assert.Equal(t, DefaultModel, req.Model)
		assert.InDelta(t, 0.8, req.Temperature, 1e-6)
		assert.InDelta(t, 0.95, req.TopP, 1e-6)
	}
}

func TestFetch_TrimsResponse(t *testing.T) {
	f := NewFetcher(&fakeGenerator{reply: "  測試文字  "}, DefaultSettings(), nil)
	assert.Equal(t, "測試文字", f.Fetch(context.Background(), breath.Calm))
}

func TestFetch_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
	}{
		{"error", &fakeGenerator{err: errors.New("boom")}},
		{"empty", &fakeGenerator{reply: ""}},
		{"whitespace", &fakeGenerator{reply: " \n\t "}},
		{"panic", &fakeGenerator{panicVal: "provider exploded"}},
		{"nil generator", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFetcher(tt.gen, DefaultSettings(), nil)
			for _, s := range breath.States() {
				assert.Equal(t, "在呼吸之間，找回自己。", f.Fetch(context.Background(), s))
			}
		})
	}
}

func TestFetch_LogsUnavailable(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := NewFetcher(&fakeGenerator{err: errors.New("quota")}, DefaultSettings(), zap.New(core))

	f.Fetch(context.Background(), breath.Anxious)

	entries := logs.FilterMessage("Using fallback reflection").All()
	require.Len(t, entries, 1)
	err, ok := entries[0].ContextMap()["error"].(string)
	require.True(t, ok)
	assert.Contains(t, err, "reflection unavailable")
	assert.Contains(t, err, "quota")
}

func TestGenerate_WrapsErrUnavailable(t *testing.T) {
	cause := errors.New("network down")
	f := NewFetcher(&fakeGenerator{err: cause}, DefaultSettings(), nil)

	_, err := f.generate(context.Background(), breath.Calm)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestFetch_NoCaching(t *testing.T) {
	gen := &fakeGenerator{reply: "again"}
	f := NewFetcher(gen, DefaultSettings(), nil)
	f.Fetch(context.Background(), breath.Calm)
	f.Fetch(context.Background(), breath.Calm)
	assert.Len(t, gen.requests, 2)
}

func TestFetch_Timeout(t *testing.T) {
	gen := &fakeGenerator{reply: "x"}
	f := NewFetcher(gen, DefaultSettings(), nil)
	f.Fetch(context.Background(), breath.Anxious)
	assert.False(t, gen.deadline, "no deadline by default")

	s := DefaultSettings()
	s.Timeout = time.Second
	f.UpdateSettings(s)
	f.Fetch(context.Background(), breath.Anxious)
	assert.True(t, gen.deadline)
}

func TestUpdateSettings(t *testing.T) {
	gen := &fakeGenerator{reply: "x"}
	f := NewFetcher(gen, Settings{}, nil)
	assert.Equal(t, DefaultModel, f.Settings().Model)

	f.UpdateSettings(Settings{Model: "gemini-2.5-flash", Temperature: 0.3, TopP: 0.5})
	f.Fetch(context.Background(), breath.Calm)

	require.Len(t, gen.requests, 1)
	assert.Equal(t, "gemini-2.5-flash", gen.requests[0].Model)
	assert.InDelta(t, 0.3, gen.requests[0].Temperature, 1e-6)
}
