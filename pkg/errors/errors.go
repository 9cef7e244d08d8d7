// Package errors provides error handling and the warning system used across
// GoBoost. Errors carry stack traces via cockroachdb/errors and implement
// zerolog object marshaling for structured logging.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("GoBoost-Warning: %v\n", w)
	}
	// zerolog warn function, lazily injected to avoid an import cycle.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the warning handler for the whole library.
// This controls how non-fatal warnings such as DeprecationWarning are
// surfaced.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc injects a zerolog-backed warn function.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. When a zerolog warn function has been injected it is
// preferred; otherwise the registered handler runs.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// DeprecationWarning is emitted when a caller uses a deprecated or partially
// matched parameter name that was mapped onto its canonical form.
type DeprecationWarning struct {
	Given     string // name the caller used
	Matched   string // deprecated name it matched (equals Given unless partial)
	Canonical string // canonical name it was mapped to
	Partial   bool   // true when matched by unique prefix
}

func (w *DeprecationWarning) Error() string {
	if w.Partial {
		return fmt.Sprintf("'%s' was partially matched to '%s'", w.Given, w.Matched)
	}
	return fmt.Sprintf("'%s' is deprecated", w.Given)
}

// MarshalZerologObject adds structured warning information to a zerolog event.
func (w *DeprecationWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("given", w.Given).
		Str("matched", w.Matched).
		Str("canonical", w.Canonical).
		Bool("partial", w.Partial).
		Str("type", "DeprecationWarning")
}

// NewDeprecationWarning creates a DeprecationWarning.
func NewDeprecationWarning(given, matched, canonical string, partial bool) *DeprecationWarning {
	return &DeprecationWarning{Given: given, Matched: matched, Canonical: canonical, Partial: partial}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// HandleError indicates that an operation received a nil or otherwise
// invalid model handle.
type HandleError struct {
	Op     string
	Reason string
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("goboost: %s: invalid model handle: %s", e.Op, e.Reason)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *HandleError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "HandleError")
}

// NewHandleError creates a HandleError with a stack trace attached.
func NewHandleError(op, reason string) error {
	err := &HandleError{Op: op, Reason: reason}
	return errors.WithStack(err)
}

// KeyError indicates a null, empty, or malformed attribute key.
type KeyError struct {
	Op  string
	Key string
}

func (e *KeyError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("goboost: %s: attribute key must be non-empty", e.Op)
	}
	return fmt.Sprintf("goboost: %s: malformed attribute key %q", e.Op, e.Key)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *KeyError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("key", e.Key).
		Str("type", "KeyError")
}

// NewKeyError creates a KeyError with a stack trace attached.
func NewKeyError(op, key string) error {
	err := &KeyError{Op: op, Key: key}
	return errors.WithStack(err)
}

// UnsupportedKindError indicates that a tree-structure operation was invoked
// on a model kind that does not have trees (e.g. a linear model).
type UnsupportedKindError struct {
	Op   string
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("goboost: %s: operation not supported for %s models", e.Op, e.Kind)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *UnsupportedKindError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("model_kind", e.Kind).
		Str("type", "UnsupportedKindError")
}

// NewUnsupportedKindError creates an UnsupportedKindError with a stack trace attached.
func NewUnsupportedKindError(op, kind string) error {
	err := &UnsupportedKindError{Op: op, Kind: kind}
	return errors.WithStack(err)
}

// FileNotFoundError indicates that a model file does not exist at the given path.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("goboost: model file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *FileNotFoundError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("type", "FileNotFoundError")
}

// NewFileNotFoundError creates a FileNotFoundError with a stack trace attached.
func NewFileNotFoundError(path string, err error) error {
	fnf := &FileNotFoundError{Path: path, Err: err}
	return errors.WithStack(fnf)
}

// CorruptFormatError indicates that a model file exists but cannot be decoded.
type CorruptFormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CorruptFormatError) Error() string {
	return fmt.Sprintf("goboost: corrupt model file %s: %s", e.Path, e.Reason)
}

func (e *CorruptFormatError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *CorruptFormatError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("reason", e.Reason).
		Str("type", "CorruptFormatError")
}

// NewCorruptFormatError creates a CorruptFormatError with a stack trace attached.
func NewCorruptFormatError(path, reason string, err error) error {
	cf := &CorruptFormatError{Path: path, Reason: reason, Err: err}
	return errors.WithStack(cf)
}

// ValueError indicates an argument whose value is invalid for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("goboost: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to an error.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrNotTrained is returned when an operation requires a trained model.
	ErrNotTrained = New("model has not been trained")

	// ErrEmptyData is returned when empty data is passed.
	ErrEmptyData = New("empty data")
)
