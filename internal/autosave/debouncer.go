package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/storefront-vault/pkg/enums"
)

// DefaultDelay is the quiet period before a pushed value is committed.
const DefaultDelay = 1500 * time.Millisecond

// CommitFunc persists the latest pushed value.
type CommitFunc[T any] func(ctx context.Context, value T) error

// Debouncer collapses bursts of edits into a single commit once the value has
// been quiet for the configured delay.
type Debouncer[T any] struct {
	delay  time.Duration
	commit CommitFunc[T]

	// held across a commit so timer and Flush commits never overlap
	commitMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	value   T
	status  enums.SaveStatus
	lastErr error
}

func New[T any](delay time.Duration, commit CommitFunc[T]) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		delay:  delay,
		commit: commit,
		status: enums.SaveStatusSaved,
	}
}

// Push records value as the latest draft and restarts the quiet period.
func (d *Debouncer[T]) Push(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.value = value
	d.pending = true
	d.status = enums.SaveStatusUnsaved
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	stale := gen != d.gen
	d.mu.Unlock()
	if stale {
		return
	}
	_ = d.commitPending(context.Background())
}

// Flush commits the pending value now. It is a no-op when nothing is pending.
func (d *Debouncer[T]) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	return d.commitPending(ctx)
}

// Cancel drops any pending value without committing it.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	var zero T
	d.value = zero
	d.status = enums.SaveStatusSaved
	d.lastErr = nil
}

func (d *Debouncer[T]) commitPending(ctx context.Context) error {
	d.commitMu.Lock()
	defer d.commitMu.Unlock()

	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return nil
	}
	value := d.value
	gen := d.gen
	d.pending = false
	d.status = enums.SaveStatusSaving
	d.mu.Unlock()

	err := d.commit(ctx, value)

	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case gen != d.gen:
		// a newer push arrived mid-commit; its own timer will save it
		if d.pending {
			d.status = enums.SaveStatusUnsaved
		}
		d.lastErr = err
	case err != nil:
		d.pending = true
		d.status = enums.SaveStatusUnsaved
		d.lastErr = err
	default:
		d.status = enums.SaveStatusSaved
		d.lastErr = nil
	}
	return err
}

func (d *Debouncer[T]) Status() enums.SaveStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Err returns the error of the last failed commit, if it has not since
// succeeded.
func (d *Debouncer[T]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Pending returns the value that is not yet known to be committed: either
// waiting for the quiet period or in flight.
func (d *Debouncer[T]) Pending() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.pending || d.status == enums.SaveStatusSaving
}
