// Package errors defines the error taxonomy used throughout cot: the
// six kinds named in the specification (invalid input, not found,
// conflict, capability, environmental, cancelled) plus the wrap/code
// helpers used to attach one to an arbitrary error chain.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard errors package functions so callers only need one
// import for both sentinel checks and wrapping.
var (
	As     = errors.As
	Is     = errors.Is
	New    = errors.New
	Unwrap = errors.Unwrap
)

// Kind categorizes an error for propagation and CLI exit-code purposes.
type Kind int

const (
	// KindUnknown is the zero value; GetKind returns it for errors that
	// carry none of the sentinel codes below.
	KindUnknown Kind = iota
	// KindInvalidInput covers malformed XML/TAR, missing required
	// sections, and values out of range for a property qualifier.
	KindInvalidInput
	// KindNotFound covers a referenced file-id, disk-id, profile,
	// network, or property key that does not exist.
	KindNotFound
	// KindConflict covers instance-ID collisions and duplicate file-id on
	// add without --force.
	KindConflict
	// KindCapability covers a required helper tool that is not
	// installed and not installable.
	KindCapability
	// KindEnvironmental covers insufficient disk space, I/O failure,
	// and permission errors.
	KindEnvironmental
	// KindCancelled covers a caller-triggered abort via CancelToken.
	KindCancelled
	// KindInternal covers invariant violations in the hardware
	// factorization engine and other bugs; these terminate with a
	// diagnostic rather than unwind gracefully.
	KindInternal
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindCapability:
		return "CAPABILITY"
	case KindEnvironmental:
		return "ENVIRONMENTAL"
	case KindCancelled:
		return "CANCELLED"
	case KindInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode maps a Kind to the process exit code cot's CLI returns:
// 0 success, 1 user error, 2 environmental failure, 3 internal error.
func (k Kind) ExitCode() int {
	switch k {
	case KindInvalidInput, KindNotFound, KindConflict:
		return 1
	case KindCapability, KindEnvironmental:
		return 2
	case KindCancelled:
		return 1
	case KindInternal:
		return 3
	default:
		return 3
	}
}

// Sentinel errors. Each is associated with exactly one Kind via
// kindsByError so GetKind can recover the category from a wrapped chain.
var (
	// Invalid input
	ErrMalformedXML      = errors.New("malformed OVF descriptor XML")
	ErrMalformedTAR      = errors.New("malformed OVA TAR archive")
	ErrMissingSection    = errors.New("descriptor missing required section")
	ErrQualifierViolated = errors.New("value violates property qualifier")

	// Not found
	ErrFileNotFound     = errors.New("file not found")
	ErrDiskNotFound     = errors.New("disk not found")
	ErrProfileNotFound  = errors.New("configuration profile not found")
	ErrNetworkNotFound  = errors.New("network not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrItemNotFound     = errors.New("hardware item not found")

	// Conflict
	ErrInstanceIDCollision = errors.New("instance ID collision")
	ErrDuplicateFileID     = errors.New("duplicate file ID")

	// Capability
	ErrHelperNotFound = errors.New("required helper tool not available")

	// Environmental
	ErrInsufficientSpace = errors.New("insufficient disk space")
	ErrIO                = errors.New("I/O failure")
	ErrPermission        = errors.New("permission denied")

	// Cancelled
	ErrCancelled = errors.New("operation cancelled")

	// Internal
	ErrInvariantViolated = errors.New("internal invariant violated")
)

var kindsByError = map[error]Kind{
	ErrMalformedXML:      KindInvalidInput,
	ErrMalformedTAR:      KindInvalidInput,
	ErrMissingSection:    KindInvalidInput,
	ErrQualifierViolated: KindInvalidInput,

	ErrFileNotFound:     KindNotFound,
	ErrDiskNotFound:     KindNotFound,
	ErrProfileNotFound:  KindNotFound,
	ErrNetworkNotFound:  KindNotFound,
	ErrPropertyNotFound: KindNotFound,
	ErrItemNotFound:     KindNotFound,

	ErrInstanceIDCollision: KindConflict,
	ErrDuplicateFileID:     KindConflict,

	ErrHelperNotFound: KindCapability,

	ErrInsufficientSpace: KindEnvironmental,
	ErrIO:                KindEnvironmental,
	ErrPermission:        KindEnvironmental,

	ErrCancelled: KindCancelled,

	ErrInvariantViolated: KindInternal,
}

// Wrap wraps an error with additional context, preserving Is/As and Kind
// recovery through the chain.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// WrapWithKind wraps err, additionally associating it with kind so
// GetKind(result) == kind even if err itself carries no sentinel.
func WrapWithKind(err error, kind Kind, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf(format+": %w", append(args, err)...)
	return &kindedError{kind: kind, err: wrapped}
}

type kindedError struct {
	kind Kind
	err  error
}

func (e *kindedError) Error() string { return e.err.Error() }
func (e *kindedError) Unwrap() error { return e.err }

// GetKind walks the error chain and returns the first recognized Kind,
// preferring an explicit *kindedError over a bare sentinel match.
func GetKind(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var ke *kindedError
	if errors.As(err, &ke) {
		return ke.kind
	}

	for sentinel, kind := range kindsByError {
		if errors.Is(err, sentinel) {
			return kind
		}
	}

	return KindUnknown
}

// ExitCode is a convenience wrapper around GetKind(err).ExitCode(),
// returning 0 for a nil error and 3 (internal error) for an
// unrecognized non-nil error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	kind := GetKind(err)
	if kind == KindUnknown {
		return 3
	}
	return kind.ExitCode()
}
