package session

import (
	"sync/atomic"

	"github.com/threatflux/cot/internal/errors"
)

// CancelToken is a coarse-grained, caller-triggered cancellation flag.
// No package read, edit or write operation in this module polls it, so
// setting it does not stop an operation that is already running.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken returns a CancelToken in the not-cancelled state.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel marks the token cancelled. Safe to call more than once.
func (t *CancelToken) Cancel() {
	if t == nil {
		return
	}
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}

// Check returns ErrCancelled if the token has been cancelled, nil
// otherwise.
func (t *CancelToken) Check() error {
	if t.Cancelled() {
		return errors.ErrCancelled
	}
	return nil
}
