// Package availability answers "is this tag/email usable" during
// registration without issuing one network call per keystroke. Checks are
// debounced per field, cancellable, and guarded against stale results.
package availability

import (
	"context"
	"sync"
	"time"

	"github.com/mkorchagin/passwallet/internal/identity"
	"github.com/mkorchagin/passwallet/internal/logging"
)

// Field identifies which registration input a check belongs to. At most
// one check per field is outstanding; newer input supersedes older.
type Field string

const (
	FieldTag   Field = "tag"
	FieldEmail Field = "email"
)

// Result is a resolved availability check for the captured input.
type Result struct {
	Field     Field
	Input     string
	Available bool
}

// Validator is a local format check; inputs that fail it are never sent to
// the backend.
type Validator func(input string) bool

// Checker schedules debounced availability lookups against the identity
// backend and delivers results through a callback. A network failure
// resolves to "assume available": the definitive uniqueness check happens
// server-side at registration time regardless of this hint.
type Checker struct {
	client     identity.Client
	quiet      time.Duration
	notify     func(Result)
	validators map[Field]Validator
	log        logging.Logger

	mu      sync.Mutex
	inputs  map[Field]string
	pending map[Field]context.CancelFunc
	wg      sync.WaitGroup
}

// New builds a Checker. quiet is the debounce interval; notify receives
// every applied result and must not block.
func New(client identity.Client, quiet time.Duration, notify func(Result), log logging.Logger) *Checker {
	return &Checker{
		client:     client,
		quiet:      quiet,
		notify:     notify,
		validators: make(map[Field]Validator),
		log:        log.With("component", "availability"),
		inputs:     make(map[Field]string),
		pending:    make(map[Field]context.CancelFunc),
	}
}

// SetValidator installs the local format check for a field.
func (c *Checker) SetValidator(field Field, v Validator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validators[field] = v
}

// Update records new input for a field. Any pending check for that field
// is cancelled; if the input is non-empty and locally valid, a new check
// is scheduled after the quiet period.
func (c *Checker) Update(ctx context.Context, field Field, input string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inputs[field] = input
	c.cancelPendingLocked(field)

	if input == "" {
		return
	}
	if v, ok := c.validators[field]; ok && !v(input) {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.pending[field] = cancel
	c.wg.Add(1)
	go c.run(runCtx, field, input)
}

// Cancel drops any pending check for the field without scheduling a new
// one.
func (c *Checker) Cancel(field Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked(field)
}

// Close cancels all pending checks and waits for their goroutines to
// finish.
func (c *Checker) Close() {
	c.mu.Lock()
	for field := range c.pending {
		c.cancelPendingLocked(field)
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Checker) cancelPendingLocked(field Field) {
	if cancel, ok := c.pending[field]; ok {
		cancel()
		delete(c.pending, field)
	}
}

// run is one cancellable unit of work. Cancellation is cooperative and is
// checked before and after the quiet-period wait; a cancelled check never
// applies a result.
func (c *Checker) run(ctx context.Context, field Field, input string) {
	defer c.wg.Done()

	timer := time.NewTimer(c.quiet)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	if ctx.Err() != nil {
		return
	}

	available, err := c.lookup(ctx, field, input)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.log.Debug(ctx, "availability check failed, assuming available", "field", string(field), "error", err)
		available = true
	}

	c.mu.Lock()
	if ctx.Err() != nil || c.inputs[field] != input {
		// stale: the field moved on while we were checking
		c.mu.Unlock()
		return
	}
	delete(c.pending, field)
	notify := c.notify
	c.mu.Unlock()

	if notify != nil {
		notify(Result{Field: field, Input: input, Available: available})
	}
}

func (c *Checker) lookup(ctx context.Context, field Field, input string) (bool, error) {
	switch field {
	case FieldEmail:
		return c.client.CheckEmail(ctx, input)
	default:
		return c.client.CheckTag(ctx, input)
	}
}
