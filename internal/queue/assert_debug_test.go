//go:build chunkqueue_debug

package queue

import (
	"testing"

	"github.com/pkg/errors"
)

func expectViolation(t *testing.T, class error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected panic with error, got %v", r)
		}
		if errors.Cause(err) != class {
			t.Fatalf("expected %v, got %v", class, err)
		}
	}()
	fn()
}

func TestDebugAssertions(t *testing.T) {
	expectViolation(t, ErrConsumeExceedsAvailable, func() {
		NewList[string](Runes{}, WithChunks("ab", "c")).Consume(4)
	})
	expectViolation(t, ErrEmptyQueue, func() {
		NewList[[]byte](Bytes{}).Consume(1)
	})
	expectViolation(t, ErrInvalidCount, func() {
		NewList[[]byte](Bytes{}, WithChunks([]byte("a"))).Consume(0)
	})
	expectViolation(t, ErrModeMismatch, func() {
		NewList[string](nil)
	})
}
