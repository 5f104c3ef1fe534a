package transform

import "errors"

// ErrEmptyReply is the failure reason when the model answered with nothing
// usable.
var ErrEmptyReply = errors.New("model returned an empty reply")

// Result is the outcome of transforming one file: either the transformed
// text or the reason it could not be produced.
type Result struct {
	text string
	err  error
}

// Success wraps transformed text.
func Success(text string) Result {
	return Result{text: text}
}

// Failure wraps the reason a transform did not complete. A nil reason is
// replaced so that a failed Result always carries one.
func Failure(reason error) Result {
	if reason == nil {
		reason = errors.New("transform failed")
	}
	return Result{err: reason}
}

// OK reports whether the transform succeeded.
func (r Result) OK() bool { return r.err == nil }

// Text returns the transformed content; empty for a failure.
func (r Result) Text() string { return r.text }

// Err returns the failure reason; nil on success.
func (r Result) Err() error { return r.err }
