// Package chunkqueue buffers arbitrarily sized chunks of bytes or text in
// arrival order and hands out exact unit counts from the front, whether the
// count falls inside one chunk or spans several.
//
// ByteQueue and TextQueue are the raw queues: they count chunks, not units,
// and trust the caller about how many units are buffered. ByteBuffer and
// TextBuffer add that accounting and return errors instead of trusting.
// None of these types are safe for concurrent use.
package chunkqueue

import (
	"bytes"
	"fmt"
	"iter"
	"strings"

	"github.com/timzifer/chunkqueue/internal/queue"
)

var (
	// ErrConsumeExceedsAvailable is returned when more units are requested than are buffered.
	ErrConsumeExceedsAvailable = queue.ErrConsumeExceedsAvailable
	// ErrEmptyQueue classifies head access on an empty queue.
	ErrEmptyQueue = queue.ErrEmptyQueue
	// ErrModeMismatch classifies a queue whose unit strategy does not fit its chunk kind.
	ErrModeMismatch = queue.ErrModeMismatch
	// ErrInvalidCount is returned for unit counts below one.
	ErrInvalidCount = queue.ErrInvalidCount
)

// ByteQueue is a FIFO of byte chunks whose Consume counts bytes.
//
// Chunks handed to Push or Unshift are owned by the queue until they come back
// out. Consume may return a slice that aliases a pushed chunk.
type ByteQueue struct {
	list *queue.List[[]byte]
}

// NewByteQueue creates a queue seeded with chunks in push order.
func NewByteQueue(chunks ...[]byte) *ByteQueue {
	return &ByteQueue{list: queue.NewList[[]byte](queue.Bytes{}, queue.WithChunks(chunks...))}
}

// Len returns the number of chunks in the queue.
func (q *ByteQueue) Len() int {
	return q.list.Len()
}

// Push appends a chunk.
func (q *ByteQueue) Push(chunk []byte) {
	q.list.Push(chunk)
}

// Unshift prepends a chunk.
func (q *ByteQueue) Unshift(chunk []byte) {
	q.list.Unshift(chunk)
}

// Shift removes and returns the oldest chunk.
func (q *ByteQueue) Shift() ([]byte, bool) {
	return q.list.Shift()
}

// Peek returns the oldest chunk without removing it.
func (q *ByteQueue) Peek() ([]byte, bool) {
	return q.list.Peek()
}

// Clear drops every chunk.
func (q *ByteQueue) Clear() {
	q.list.Clear()
}

// All yields the chunks from oldest to newest.
func (q *ByteQueue) All() iter.Seq[[]byte] {
	return q.list.All()
}

// Consume removes and returns exactly n bytes. The caller guarantees
// 1 <= n <= buffered bytes.
func (q *ByteQueue) Consume(n int) []byte {
	return q.list.Consume(n)
}

// ConcatAll copies every chunk into one buffer of total bytes without
// draining the queue. total must be the sum of the chunk lengths: a smaller
// value truncates the result and a larger one leaves zero bytes at the end.
func (q *ByteQueue) ConcatAll(total int) []byte {
	if total <= 0 {
		return []byte{}
	}

	buf := make([]byte, total)
	off := 0
	for c := range q.list.All() {
		off += copy(buf[off:], c)
	}
	return buf
}

// Join concatenates the chunks with sep between them without draining the queue.
func (q *ByteQueue) Join(sep []byte) []byte {
	var b bytes.Buffer
	first := true
	for c := range q.list.All() {
		if !first {
			b.Write(sep)
		}
		first = false
		b.Write(c)
	}
	return b.Bytes()
}

func (q *ByteQueue) String() string {
	return fmt.Sprintf("ByteQueue(len=%d)", q.list.Len())
}

// TextQueue is a FIFO of text chunks whose Consume counts runes.
//
// Runes are counted per chunk, so chunks should hold whole runes. A rune split
// across two pushes is counted as its separate bytes, since invalid UTF-8
// bytes count one unit each.
type TextQueue struct {
	list *queue.List[string]
}

// NewTextQueue creates a queue seeded with chunks in push order.
func NewTextQueue(chunks ...string) *TextQueue {
	return &TextQueue{list: queue.NewList[string](queue.Runes{}, queue.WithChunks(chunks...))}
}

// Len returns the number of chunks in the queue.
func (q *TextQueue) Len() int {
	return q.list.Len()
}

// Push appends a chunk.
func (q *TextQueue) Push(chunk string) {
	q.list.Push(chunk)
}

// Unshift prepends a chunk.
func (q *TextQueue) Unshift(chunk string) {
	q.list.Unshift(chunk)
}

// Shift removes and returns the oldest chunk.
func (q *TextQueue) Shift() (string, bool) {
	return q.list.Shift()
}

// Peek returns the oldest chunk without removing it.
func (q *TextQueue) Peek() (string, bool) {
	return q.list.Peek()
}

// Clear drops every chunk.
func (q *TextQueue) Clear() {
	q.list.Clear()
}

// All yields the chunks from oldest to newest.
func (q *TextQueue) All() iter.Seq[string] {
	return q.list.All()
}

// Consume removes and returns exactly n runes. The caller guarantees
// 1 <= n <= buffered runes.
func (q *TextQueue) Consume(n int) string {
	return q.list.Consume(n)
}

// Join concatenates the chunks with sep between them without draining the queue.
func (q *TextQueue) Join(sep string) string {
	var b strings.Builder
	first := true
	for c := range q.list.All() {
		if !first {
			b.WriteString(sep)
		}
		first = false
		b.WriteString(c)
	}
	return b.String()
}

func (q *TextQueue) String() string {
	return fmt.Sprintf("TextQueue(len=%d)", q.list.Len())
}
