package errors

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// SafeDetailPrefix tags the JSON payload attached by
// WithReportableDetails so the HTTP error handler can pick it out of
// the error's safe details.
const SafeDetailPrefix = "__json__:"

// ErrorBuilder accumulates context onto an error before it is tied to
// a sentinel. The builder is not itself an error; the chain ends with
// Mark, which returns the finished error.
type ErrorBuilder struct {
	err error
}

// NewError starts a chain from a fresh root cause
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError starts a chain wrapping an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithMessage prefixes the internal message. Clients never see it;
// it shows up in logs and traces only.
func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// WithHint attaches the client-facing message
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// WithHintf attaches a formatted client-facing message
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails attaches a structured payload that is safe to
// return to the client. A payload that cannot be marshaled is dropped
// rather than failing the chain.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	marshaled, err := json.Marshal(details)
	if err != nil {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, SafeDetailPrefix+"%s", errors.Safe(string(marshaled)))
	return b
}

// Mark ties the accumulated error to a sentinel so callers can branch
// on it with Is. It must be the last call in the chain.
func (b *ErrorBuilder) Mark(reference error) error {
	b.err = errors.Mark(b.err, reference)
	return b.err
}

// Err returns the accumulated error without marking it
func (b *ErrorBuilder) Err() error {
	return b.err
}
