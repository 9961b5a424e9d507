package trace

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Heartbeat emits periodic events so a stuck run is visible in the trace.
// Each beat reports how long no other event was emitted (idle) and the
// goroutine count; a growing idle on a busy check means a worker hangs.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	stopCh   chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// StartHeartbeat starts the heartbeat goroutine; nil when tracing is off
// or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.wg.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var ownSeq uint64 // seq of our previous beat
	lastActive := time.Now()
	for n := 1; ; n++ {
		select {
		case now := <-ticker.C:
			// кто-то кроме нас писал события с прошлого тика
			if globalSeq.Load() != ownSeq {
				lastActive = now
			}
			ownSeq = NextSeq()
			h.tracer.Emit(Event{
				Time:   now,
				Seq:    ownSeq,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: beatDetail(n, now.Sub(lastActive), runtime.NumGoroutine()),
			})
		case <-h.stopCh:
			return
		}
	}
}

func beatDetail(n int, idle time.Duration, goroutines int) string {
	return fmt.Sprintf("#%d idle=%s goroutines=%d", n, idle.Round(time.Millisecond), goroutines)
}

// Stop stops the goroutine and waits for it. Safe to call more than once.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stopCh) })
	h.wg.Wait()
}
