// Package werror defines the typed error kinds used across the module:
// setup-time failures (ConfigError, DictionaryFormatError,
// RuntimeLimitError) are meant to be surfaced before any tokenization
// begins; IoError and TokenizationError can also occur per call. Every kind
// shares the single *Error type and is told apart by its Kind field, so
// callers branch with Is (or errors.As to *Error and a Kind check) instead
// of string-matching.
package werror

import (
	"errors"
	"fmt"
)

// Kind categorizes a werror value for callers that only care about the
// coarse failure class.
type Kind int

const (
	KindConfig Kind = iota
	KindDictionaryFormat
	KindIO
	KindTokenization
	KindRuntimeLimit
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindDictionaryFormat:
		return "dictionary format"
	case KindIO:
		return "io"
	case KindTokenization:
		return "tokenization"
	case KindRuntimeLimit:
		return "runtime limit"
	default:
		return "unknown"
	}
}

// Error is the common shape of all werror kinds.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

func newErr(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Config reports a bad configuration: unknown plugin class, invalid plugin
// option, missing required key.
func Config(format string, args ...any) *Error { return newErr(KindConfig, format, args...) }

// DictionaryFormat reports a malformed dictionary byte image: bad magic,
// truncated file, misaligned block, POS count exceeded.
func DictionaryFormat(format string, args ...any) *Error {
	return newErr(KindDictionaryFormat, format, args...)
}

// IO reports a file-system level failure (not found, read failure).
func IO(cause error, format string, args ...any) *Error {
	e := newErr(KindIO, format, args...)
	e.err = cause
	return e
}

// Tokenization reports a per-call tokenization failure: no path to EOS, no
// dictionary loaded.
func Tokenization(format string, args ...any) *Error {
	return newErr(KindTokenization, format, args...)
}

// RuntimeLimit reports a fixed structural limit being exceeded: POS/word id
// overflow at 32767/2^28, string length over 32767.
func RuntimeLimit(format string, args ...any) *Error {
	return newErr(KindRuntimeLimit, format, args...)
}

// Wrap builds a new werror of the given kind with cause as its wrapped
// error.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	e := newErr(kind, format, args...)
	e.err = cause
	return e
}

// Is reports whether err is (or wraps) a werror.Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
