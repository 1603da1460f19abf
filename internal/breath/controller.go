package breath

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fetcher produces the reflection text for a state. Implementations must not
// fail: any error is resolved to a fallback phrase before returning.
type Fetcher interface {
	Fetch(ctx context.Context, state State) string
}

// Snapshot is a consistent copy of everything the presentation layer reads.
type Snapshot struct {
	State      State
	Config     StateConfig
	Reflection string
	Loading    bool
	Progress   int
	Seq        uint64 // sequence number of the latest issued fetch
}

// Option configures a Controller.
type Option func(*Controller)

// WithTickInterval sets the progress ticker interval.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.tickInterval = d
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller owns the exercise state. It is safe for concurrent use.
//
// Every transition issues a fetch tagged with a new sequence number; only the
// result carrying the latest number is applied, so a slow fetch for an older
// state can never overwrite a newer reflection.
type Controller struct {
	fetcher      Fetcher
	logger       *zap.Logger
	sessionID    string
	tickInterval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	started    bool
	closed     bool
	state      State
	progress   int
	reflection string
	loading    bool
	seq        uint64
	ticker     *Ticker
	fetches    sync.WaitGroup

	events chan Snapshot
}

// NewController creates a controller in the Anxious state. Call Start to
// issue the first fetch.
func NewController(fetcher Fetcher, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		fetcher:      fetcher,
		logger:       zap.NewNop(),
		sessionID:    uuid.NewString(),
		tickInterval: DefaultTickInterval,
		ctx:          ctx,
		cancel:       cancel,
		state:        Anxious,
		events:       make(chan Snapshot, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("session", c.sessionID))
	c.ticker = NewTicker(c.tickInterval, c.tick)
	return c
}

// SessionID identifies this controller in logs.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Events delivers a snapshot after every observable change. The channel holds
// at most one pending snapshot; a slow reader always receives the newest one.
// It is closed by Close.
func (c *Controller) Events() <-chan Snapshot {
	return c.events
}

// Start activates the controller: state is Anxious and the first fetch is
// issued. Subsequent calls do nothing.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started || c.closed {
		return
	}
	c.started = true
	c.state = Anxious
	c.logger.Info("Exercise started")
	c.beginFetchLocked(Anxious)
	c.publishLocked()
}

// Advance moves to the next state. It returns false when already Calm (or
// closed), in which case nothing happens and no fetch is issued.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	next, ok := c.state.Next()
	if !ok {
		return false
	}
	c.logger.Debug("Advancing", zap.Stringer("from", c.state), zap.Stringer("to", next))
	c.state = next
	c.ticker.Restart()
	c.beginFetchLocked(next)
	c.publishLocked()
	return true
}

// Reset returns to Anxious from any state, zeroes the progress counter, stops
// the ticker and issues a fetch for Anxious.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.logger.Debug("Resetting", zap.Stringer("from", c.state))
	c.state = Anxious
	c.progress = 0
	c.ticker.Stop()
	c.beginFetchLocked(Anxious)
	c.publishLocked()
}

// Snapshot returns the current observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// TickerActive reports whether the progress ticker is running.
func (c *Controller) TickerActive() bool {
	return c.ticker.Running()
}

// Close tears the controller down: the ticker is stopped, in-flight fetches
// are cancelled and awaited, and the Events channel is closed.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.ticker.Stop()
	c.cancel()
	c.mu.Unlock()

	c.ticker.Wait()
	c.fetches.Wait()
	close(c.events)
	c.logger.Info("Exercise closed")
}

func (c *Controller) beginFetchLocked(state State) {
	c.seq++
	seq := c.seq
	c.loading = true

	c.fetches.Add(1)
	go func() {
		defer c.fetches.Done()
		start := time.Now()
		text := c.fetcher.Fetch(c.ctx, state)
		c.resolve(seq, state, text, time.Since(start))
	}()
}

func (c *Controller) resolve(seq uint64, state State, text string, took time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if seq != c.seq {
		c.logger.Debug("Discarding stale reflection",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", c.seq),
			zap.Stringer("state", state))
		return
	}
	c.reflection = text
	c.loading = false
	c.logger.Debug("Reflection applied",
		zap.Uint64("seq", seq),
		zap.Stringer("state", state),
		zap.Duration("took", took))
	c.publishLocked()
}

func (c *Controller) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A tick can land just after Reset stopped the ticker.
	if c.closed || c.state == Anxious {
		return
	}
	c.progress = (c.progress + 1) % 100
	c.publishLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:      c.state,
		Config:     ConfigFor(c.state),
		Reflection: c.reflection,
		Loading:    c.loading,
		Progress:   c.progress,
		Seq:        c.seq,
	}
}

// publishLocked replaces any unread snapshot with the current one.
func (c *Controller) publishLocked() {
	s := c.snapshotLocked()
	select {
	case c.events <- s:
		return
	default:
	}
	select {
	case <-c.events:
	default:
	}
	select {
	case c.events <- s:
	default:
	}
}
