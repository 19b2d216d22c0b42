// Package session provides the Session and Workspace values threaded
// through edit operations in place of global mutable state: a scratch
// directory with scoped cleanup, a cancellation token, a confirmation
// callback for warnings, and a memoized helper-tool path cache.
package session

import (
	"sync"

	"github.com/threatflux/cot/internal/config"
	"github.com/threatflux/cot/internal/metrics"
	"github.com/threatflux/cot/pkg/logger"
)

// ConfirmCallback asks the caller to confirm a warning (platform bounds
// violation, manifest mismatch, space shortfall, duplicate file-id on
// add). It returns true to proceed. A nil callback combined with
// AutoConfirm true behaves like --force; nil with AutoConfirm false
// always declines.
type ConfirmCallback func(message string) bool

// Session carries per-invocation state through every edit operation.
type Session struct {
	Config    *config.Config
	Logger    logger.Logger
	Metrics   metrics.Collector
	Workspace *Workspace
	Cancel    *CancelToken

	confirm     ConfirmCallback
	autoConfirm bool

	mu          sync.Mutex
	helperCache map[string]string
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithConfirm sets the confirmation callback used for warnings.
func WithConfirm(cb ConfirmCallback) Option {
	return func(s *Session) { s.confirm = cb }
}

// WithAutoConfirm makes every warning auto-confirm, matching --force.
func WithAutoConfirm(auto bool) Option {
	return func(s *Session) { s.autoConfirm = auto }
}

// WithMetrics overrides the default no-op metrics collector.
func WithMetrics(m metrics.Collector) Option {
	return func(s *Session) { s.Metrics = m }
}

// New creates a Session with its own scratch Workspace. Call Close when
// the edit session ends, on every exit path including error.
func New(cfg *config.Config, log logger.Logger, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}

	ws, err := NewWorkspace(cfg.Session.ScratchDir)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Config:      cfg,
		Logger:      log,
		Metrics:     metrics.NewCollector("noop", log),
		Workspace:   ws,
		Cancel:      NewCancelToken(),
		helperCache: make(map[string]string),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close removes the session's scratch workspace. Safe to call more than
// once; subsequent calls are no-ops.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	return s.Workspace.Close()
}

// Confirm surfaces message through the confirmation callback. With
// --force semantics (AutoConfirm true) it always returns true without
// invoking the callback.
func (s *Session) Confirm(message string) bool {
	if s.autoConfirm {
		return true
	}
	if s.confirm == nil {
		return false
	}
	return s.confirm(message)
}

// CachedHelperPath memoizes the result of resolve() keyed by name, so a
// helper tool's location on PATH is probed at most once per session.
func (s *Session) CachedHelperPath(name string, resolve func() (string, error)) (string, error) {
	s.mu.Lock()
	if path, ok := s.helperCache[name]; ok {
		s.mu.Unlock()
		return path, nil
	}
	s.mu.Unlock()

	path, err := resolve()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.helperCache[name] = path
	s.mu.Unlock()

	return path, nil
}
