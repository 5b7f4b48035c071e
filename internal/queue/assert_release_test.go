//go:build !chunkqueue_debug

package queue

import (
	"bytes"
	"testing"
)

func TestReleaseConsumeBeyondBufferedIsUnchecked(t *testing.T) {
	l := NewList[[]byte](Bytes{}, WithChunks([]byte{1}, []byte{2}))

	got := l.Consume(4)
	if !bytes.Equal(got, []byte{1, 2, 0, 0}) {
		t.Fatalf("expected zero padded result, got %v", got)
	}
	if l.Len() != 0 {
		t.Fatalf("expected list to be drained, got %d", l.Len())
	}

	text := NewList[string](Runes{}, WithChunks("ab"))
	if got := text.Consume(5); got != "ab" {
		t.Fatalf("expected short text result, got %q", got)
	}
}

func TestReleaseConsumeBelowOneReturnsZero(t *testing.T) {
	l := NewList[[]byte](Bytes{}, WithChunks([]byte("abc")))

	if got := l.Consume(0); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if l.Len() != 1 {
		t.Fatalf("expected list untouched, got %d", l.Len())
	}
}
