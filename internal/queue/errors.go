package queue

import "github.com/pkg/errors"

var (
	// ErrConsumeExceedsAvailable classifies a request for more units than are buffered.
	ErrConsumeExceedsAvailable = errors.New("chunkqueue: consume exceeds buffered units")
	// ErrEmptyQueue classifies access to the head of an empty queue.
	ErrEmptyQueue = errors.New("chunkqueue: queue is empty")
	// ErrModeMismatch classifies a list whose unit strategy does not match its chunk kind.
	ErrModeMismatch = errors.New("chunkqueue: unit strategy does not match chunk kind")
	// ErrInvalidCount classifies a unit count below one.
	ErrInvalidCount = errors.New("chunkqueue: unit count must be positive")
)

// violation panics with class wrapped in a formatted message. Callers guard
// it with debugAssertions so release builds drop the check entirely.
func violation(class error, format string, args ...interface{}) {
	panic(errors.Wrapf(class, format, args...))
}
