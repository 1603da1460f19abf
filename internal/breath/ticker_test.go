package breath

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTicker_FiresUntilStopped(t *testing.T) {
	var n int32
	tk := NewTicker(2*time.Millisecond, func() { atomic.AddInt32(&n, 1) })

	assert.True(t, tk.Start())
	assert.False(t, tk.Start(), "second Start should be a no-op")
	assert.True(t, tk.Running())

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&n) >= 3 }, time.Second, time.Millisecond)

	tk.Stop()
	tk.Wait()
	assert.False(t, tk.Running())

	frozen := atomic.LoadInt32(&n)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, frozen, atomic.LoadInt32(&n))
}

func TestTicker_StopIsIdempotent(t *testing.T) {
	tk := NewTicker(time.Millisecond, func() {})
	tk.Stop()
	tk.Start()
	tk.Stop()
	tk.Stop()
	tk.Wait()
	assert.False(t, tk.Running())
}

func TestTicker_Restart(t *testing.T) {
	var n int32
	tk := NewTicker(2*time.Millisecond, func() { atomic.AddInt32(&n, 1) })
	tk.Start()
	tk.Restart()
	assert.True(t, tk.Running())
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&n) >= 1 }, time.Second, time.Millisecond)
	tk.Stop()
	tk.Wait()
}

func TestTicker_DefaultInterval(t *testing.T) {
	tk := NewTicker(0, func() {})
	assert.Equal(t, DefaultTickInterval, tk.interval)
}
