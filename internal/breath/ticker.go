package breath

import (
	"sync"
	"time"
)

// DefaultTickInterval is how often the progress counter advances.
const DefaultTickInterval = 50 * time.Millisecond

// Ticker runs fn on a fixed interval until stopped. It is a restartable
// handle: Start after Stop begins a fresh run. Stop only signals; Wait blocks
// until every run has exited.
type Ticker struct {
	interval time.Duration
	fn       func()

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewTicker creates a stopped ticker. A non-positive interval selects
// DefaultTickInterval.
func NewTicker(interval time.Duration, fn func()) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Ticker{
		interval: interval,
		fn:       fn,
	}
}

// Start begins ticking. It returns false if the ticker is already running.
func (t *Ticker) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		return false
	}
	stop := make(chan struct{})
	t.stop = stop
	t.wg.Add(1)
	go t.run(stop)
	return true
}

// Stop cancels the pending tick. It does not wait for fn to return; a call
// already in progress may complete after Stop. Stop is idempotent.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

// Restart stops any current run and starts a new one.
func (t *Ticker) Restart() {
	t.Stop()
	t.Start()
}

// Running reports whether a run is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

// Wait blocks until all stopped runs have exited.
func (t *Ticker) Wait() {
	t.wg.Wait()
}

func (t *Ticker) run(stop <-chan struct{}) {
	defer t.wg.Done()

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-stop:
			return
		case <-tk.C:
			// Stop may race with the tick; prefer stop.
			select {
			case <-stop:
				return
			default:
			}
			t.fn()
		}
	}
}
