package expiry

import (
	"sync"
	"time"
)

// Phase is the watcher's position in the session lifetime.
type Phase uint8

const (
	// PhaseNotStarted is the initial phase before the first Start.
	PhaseNotStarted Phase = iota
	// PhaseActive means the session has more than the warning window left.
	PhaseActive
	// PhaseWarning means expiry is closer than the warning window.
	PhaseWarning
	// PhaseExpired is terminal for this window; only Start leaves it.
	PhaseExpired
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseWarning:
		return "warning"
	case PhaseExpired:
		return "expired"
	default:
		return "not_started"
	}
}

// Config holds watcher tuning parameters. Zero values take defaults.
type Config struct {
	// Timeout is the full inactivity window. Default 30 minutes.
	Timeout time.Duration
	// WarningWindow is how long before Timeout the warning phase begins.
	// Default 5 minutes.
	WarningWindow time.Duration
	// PollInterval is the tick period of the expiry check. Default 30 seconds.
	PollInterval time.Duration
	// ActivityThrottle bounds how often Touch records activity. Default 1
	// second; callers tracking high-frequency events may raise it up to the
	// poll interval.
	ActivityThrottle time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Minute
	}
	if c.WarningWindow <= 0 {
		c.WarningWindow = 5 * time.Minute
	}
	if c.WarningWindow >= c.Timeout {
		c.WarningWindow = c.Timeout / 2
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 30 * time.Second
	}
	if c.ActivityThrottle <= 0 {
		c.ActivityThrottle = time.Second
	}
	return c
}

// Callbacks receive phase transitions. Both are invoked outside the watcher
// lock; OnExpire fires exactly once per started window, OnWarning once per
// entry into the warning phase.
type Callbacks struct {
	OnWarning func()
	OnExpire  func()
}

// Watcher tracks the last-activity timestamp and drives the expiry phases.
// Safe for concurrent use.
type Watcher struct {
	cfg Config
	cb  Callbacks
	now func() time.Time

	mu           sync.Mutex
	phase        Phase
	lastActivity time.Time
	lastTouch    time.Time
	stop         chan struct{}
	wg           sync.WaitGroup
}

// NewWatcher creates a stopped watcher in PhaseNotStarted.
func NewWatcher(cfg Config, cb Callbacks) *Watcher {
	return &Watcher{
		cfg: cfg.withDefaults(),
		cb:  cb,
		now: time.Now,
	}
}

// SetClock replaces the time source. Must be called before Start.
func (w *Watcher) SetClock(now func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
}

// Start resets the window and begins polling. Idempotent: a second Start on a
// running watcher only refreshes the activity timestamp.
func (w *Watcher) Start() {
	w.mu.Lock()
	now := w.now()
	w.lastActivity = now
	w.lastTouch = time.Time{}
	w.phase = PhaseActive
	if w.stop != nil {
		w.mu.Unlock()
		return
	}
	w.stop = make(chan struct{})
	stop := w.stop
	w.mu.Unlock()

	w.wg.Add(1)
	go w.poll(stop)
}

// Stop tears down the poll goroutine and returns to PhaseNotStarted.
// Idempotent and safe to call from any goroutine except the callbacks.
func (w *Watcher) Stop() {
	w.mu.Lock()
	stop := w.stop
	w.stop = nil
	w.phase = PhaseNotStarted
	w.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	w.wg.Wait()
}

func (w *Watcher) poll(stop chan struct{}) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Evaluate()
		case <-stop:
			return
		}
	}
}

// Touch records user activity, subject to the throttle window: at most one
// event per ActivityThrottle is processed. Returns whether the event was
// recorded. A touch in PhaseWarning returns the watcher to PhaseActive; a
// touch when not started or already expired is a no-op.
func (w *Watcher) Touch() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase == PhaseNotStarted || w.phase == PhaseExpired {
		return false
	}

	now := w.now()
	if !w.lastTouch.IsZero() && now.Sub(w.lastTouch) < w.cfg.ActivityThrottle {
		return false
	}

	w.lastTouch = now
	w.lastActivity = now
	w.phase = PhaseActive
	return true
}

// Extend resets the window unconditionally (no throttle), e.g. from an
// explicit "stay signed in" action during the warning phase.
func (w *Watcher) Extend() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase == PhaseNotStarted || w.phase == PhaseExpired {
		return
	}

	w.lastActivity = w.now()
	w.phase = PhaseActive
}

// Phase returns the current phase.
func (w *Watcher) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Remaining returns the time left before expiry, floored at zero. Zero when
// not started or already expired.
func (w *Watcher) Remaining() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.phase == PhaseNotStarted || w.phase == PhaseExpired {
		return 0
	}

	left := w.cfg.Timeout - w.now().Sub(w.lastActivity)
	if left < 0 {
		return 0
	}
	return left
}

// Evaluate advances the phase from the current clock reading and fires
// callbacks for transitions. Called by the poll loop on every tick; exported
// so a caller driving a synthetic clock can step the watcher deterministically.
func (w *Watcher) Evaluate() {
	w.mu.Lock()

	if w.phase == PhaseNotStarted || w.phase == PhaseExpired {
		w.mu.Unlock()
		return
	}

	idle := w.now().Sub(w.lastActivity)

	var fire func()
	switch {
	case idle >= w.cfg.Timeout:
		w.phase = PhaseExpired
		fire = w.cb.OnExpire
	case idle >= w.cfg.Timeout-w.cfg.WarningWindow:
		if w.phase != PhaseWarning {
			w.phase = PhaseWarning
			fire = w.cb.OnWarning
		}
	}
	w.mu.Unlock()

	if fire != nil {
		fire()
	}
}
