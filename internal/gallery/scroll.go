package gallery

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ScrollState is the trigger state
type ScrollState int32

const (
	// Idle means no load-more is in flight
	Idle ScrollState = iota
	// Triggered means a load-more callback is running
	Triggered
)

func (s ScrollState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Triggered:
		return "triggered"
	default:
		return fmt.Sprintf("ScrollState(%d)", int32(s))
	}
}

const (
	// DefaultMargin is the sentinel distance at which loading starts
	DefaultMargin = 200
	// DefaultFallbackInterval bounds fallback scroll handling to ~10 events per second
	DefaultFallbackInterval = 100 * time.Millisecond
)

// ScrollPosition is a scroll event observed by the fallback path
type ScrollPosition struct {
	Top          int
	ClientHeight int
	ScrollHeight int
}

// nearBottom reports whether the viewport bottom is within threshold of the end
func (p ScrollPosition) nearBottom(threshold int) bool {
	return p.Top+p.ClientHeight >= p.ScrollHeight-threshold
}

// LoadFunc is invoked when the trigger fires
type LoadFunc func(ctx context.Context) error

// ScrollTrigger turns scroll proximity into load-more calls, allowing at most
// one in flight.
type ScrollTrigger struct {
	load      LoadFunc
	hasMore   func() bool
	onError   func(error)
	margin    int
	threshold int
	limiter   *rate.Limiter

	state atomic.Int32
	fired atomic.Int64

	// mu orders fire against Close and guards the trailing check
	mu       sync.Mutex
	closed   bool
	last     ScrollPosition
	trailing *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// TriggerOption configures a ScrollTrigger
type TriggerOption func(*ScrollTrigger)

// WithMargin sets the sentinel distance that fires a load
func WithMargin(px int) TriggerOption {
	return func(t *ScrollTrigger) {
		if px >= 0 {
			t.margin = px
		}
	}
}

// WithThreshold sets the fallback distance from the scroll end that fires a load
func WithThreshold(px int) TriggerOption {
	return func(t *ScrollTrigger) {
		if px >= 0 {
			t.threshold = px
		}
	}
}

// WithFallbackLimit sets the fallback event rate limit
func WithFallbackLimit(limit rate.Limit, burst int) TriggerOption {
	return func(t *ScrollTrigger) {
		t.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithErrorHandler receives errors and recovered panics from the load callback
func WithErrorHandler(fn func(error)) TriggerOption {
	return func(t *ScrollTrigger) {
		t.onError = fn
	}
}

// NewScrollTrigger creates a trigger calling load while hasMore reports true
func NewScrollTrigger(load LoadFunc, hasMore func() bool, opts ...TriggerOption) *ScrollTrigger {
	ctx, cancel := context.WithCancel(context.Background())
	t := &ScrollTrigger{
		load:      load,
		hasMore:   hasMore,
		margin:    DefaultMargin,
		threshold: DefaultMargin,
		limiter:   rate.NewLimiter(rate.Every(DefaultFallbackInterval), 1),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ForView creates a trigger that loads more records into v
func ForView(v *View, opts ...TriggerOption) *ScrollTrigger {
	return NewScrollTrigger(func(ctx context.Context) error {
		_, err := v.LoadMore(ctx)
		return err
	}, v.HasMore, opts...)
}

// Proximity reports the sentinel's distance from the viewport. It returns
// true when this call started a load.
func (t *ScrollTrigger) Proximity(distance int) bool {
	if distance > t.margin {
		return false
	}
	return t.fire()
}

// Scroll handles a fallback scroll event. Events refused by the rate limiter
// are not lost: the latest position is checked again once the limiter allows.
func (t *ScrollTrigger) Scroll(pos ScrollPosition) bool {
	t.mu.Lock()
	t.last = pos
	t.mu.Unlock()

	if !pos.nearBottom(t.threshold) || !t.hasMore() {
		return false
	}
	if t.limiter.Allow() {
		return t.fire()
	}
	t.scheduleTrailing()
	return false
}

func (t *ScrollTrigger) scheduleTrailing() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.trailing != nil {
		return
	}
	r := t.limiter.Reserve()
	if !r.OK() {
		return
	}
	t.trailing = time.AfterFunc(r.Delay(), t.checkTrailing)
}

func (t *ScrollTrigger) checkTrailing() {
	t.mu.Lock()
	t.trailing = nil
	pos := t.last
	t.mu.Unlock()

	if pos.nearBottom(t.threshold) {
		t.fire()
	}
}

// RunFallback consumes scroll events until ctx is done or events is closed
func (t *ScrollTrigger) RunFallback(ctx context.Context, events <-chan ScrollPosition) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.ctx.Done():
			return
		case pos, ok := <-events:
			if !ok {
				return
			}
			t.Scroll(pos)
		}
	}
}

func (t *ScrollTrigger) fire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || !t.hasMore() {
		return false
	}
	if !t.state.CompareAndSwap(int32(Idle), int32(Triggered)) {
		return false
	}

	t.fired.Add(1)
	t.wg.Add(1)
	go t.run()
	return true
}

func (t *ScrollTrigger) run() {
	defer t.wg.Done()
	defer t.state.Store(int32(Idle))
	defer func() {
		if r := recover(); r != nil {
			t.report(fmt.Errorf("load callback panicked: %v", r))
		}
	}()

	if err := t.load(t.ctx); err != nil {
		t.report(err)
	}
}

func (t *ScrollTrigger) report(err error) {
	if t.onError != nil {
		t.onError(err)
	}
}

// State returns the current trigger state
func (t *ScrollTrigger) State() ScrollState {
	return ScrollState(t.state.Load())
}

// Fired returns how many loads the trigger has started
func (t *ScrollTrigger) Fired() int64 {
	return t.fired.Load()
}

// Wait blocks until the in-flight load, if any, returns
func (t *ScrollTrigger) Wait() {
	t.wg.Wait()
}

// Close stops the trigger, drops any pending trailing check and waits for
// the in-flight load
func (t *ScrollTrigger) Close() {
	t.mu.Lock()
	t.closed = true
	if t.trailing != nil {
		t.trailing.Stop()
		t.trailing = nil
	}
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()
}
