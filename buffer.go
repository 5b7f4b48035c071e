package chunkqueue

import (
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// DefaultReadSize is the chunk size ByteBuffer.ReadFrom reads with.
const DefaultReadSize = 16 * 1024

// ByteBuffer is a ByteQueue that keeps count of the bytes it holds, so reads
// can be checked instead of trusted. The zero value is not usable; call
// NewByteBuffer.
type ByteBuffer struct {
	queue *ByteQueue
	size  int
}

var (
	_ io.ReadWriter = (*ByteBuffer)(nil)
	_ io.WriterTo   = (*ByteBuffer)(nil)
	_ io.ReaderFrom = (*ByteBuffer)(nil)
)

// NewByteBuffer creates an empty buffer.
func NewByteBuffer() *ByteBuffer {
	return &ByteBuffer{queue: NewByteQueue()}
}

// Len returns the number of buffered bytes.
func (b *ByteBuffer) Len() int {
	return b.size
}

// Chunks returns the number of buffered chunks.
func (b *ByteBuffer) Chunks() int {
	return b.queue.Len()
}

// Write buffers a copy of p.
func (b *ByteBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.PushChunk(append([]byte(nil), p...))
	return len(p), nil
}

// PushChunk buffers p without copying. The buffer owns p afterwards.
func (b *ByteBuffer) PushChunk(p []byte) {
	if len(p) == 0 {
		return
	}
	b.queue.Push(p)
	b.size += len(p)
}

// Next removes and returns exactly n bytes. The result may alias a chunk
// passed to PushChunk.
func (b *ByteBuffer) Next(n int) ([]byte, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidCount, "next %d bytes", n)
	}
	if n > b.size {
		return nil, errors.Wrapf(ErrConsumeExceedsAvailable, "next %d bytes with %d buffered", n, b.size)
	}

	p := b.queue.Consume(n)
	b.size -= n
	return p, nil
}

// Read copies up to len(p) buffered bytes into p. It returns io.EOF when
// nothing is buffered.
func (b *ByteBuffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.size == 0 {
		return 0, io.EOF
	}

	n := 0
	for n < len(p) && b.size > 0 {
		head, _ := b.queue.Peek()
		k := copy(p[n:], head)
		if k == len(head) {
			b.queue.Shift()
		} else {
			b.queue.Consume(k)
		}
		n += k
		b.size -= k
	}
	return n, nil
}

// WriteTo drains the buffer into w chunk by chunk. Bytes w did not accept
// stay buffered.
func (b *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for b.size > 0 {
		c, _ := b.queue.Shift()
		m, err := w.Write(c)
		total += int64(m)
		b.size -= m
		if m < len(c) {
			b.queue.Unshift(c[m:])
			if err == nil {
				err = io.ErrShortWrite
			}
		}
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFrom buffers r until io.EOF, reading DefaultReadSize bytes at a time.
// Every chunk is stored at the length the read returned.
func (b *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	buf := make([]byte, DefaultReadSize)
	for {
		m, err := r.Read(buf)
		if m > 0 {
			chunk := make([]byte, m)
			copy(chunk, buf)
			b.PushChunk(chunk)
			total += int64(m)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, errors.Wrap(err, "read chunk")
		}
	}
}

// Bytes returns a copy of everything buffered without draining it.
func (b *ByteBuffer) Bytes() []byte {
	return b.queue.ConcatAll(b.size)
}

// Reset drops everything buffered.
func (b *ByteBuffer) Reset() {
	b.queue.Clear()
	b.size = 0
}

// TextBuffer is a TextQueue that keeps count of the runes it holds.
type TextBuffer struct {
	queue *TextQueue
	size  int
}

var _ io.StringWriter = (*TextBuffer)(nil)

// NewTextBuffer creates an empty buffer.
func NewTextBuffer() *TextBuffer {
	return &TextBuffer{queue: NewTextQueue()}
}

// Len returns the number of buffered runes.
func (b *TextBuffer) Len() int {
	return b.size
}

// Chunks returns the number of buffered chunks.
func (b *TextBuffer) Chunks() int {
	return b.queue.Len()
}

// WriteString buffers s. It returns the number of bytes in s.
func (b *TextBuffer) WriteString(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	b.queue.Push(s)
	b.size += utf8.RuneCountInString(s)
	return len(s), nil
}

// Next removes and returns exactly n runes.
func (b *TextBuffer) Next(n int) (string, error) {
	if n < 1 {
		return "", errors.Wrapf(ErrInvalidCount, "next %d runes", n)
	}
	if n > b.size {
		return "", errors.Wrapf(ErrConsumeExceedsAvailable, "next %d runes with %d buffered", n, b.size)
	}

	s := b.queue.Consume(n)
	b.size -= n
	return s, nil
}

// String returns everything buffered without draining it.
func (b *TextBuffer) String() string {
	return b.queue.Join("")
}

// Reset drops everything buffered.
func (b *TextBuffer) Reset() {
	b.queue.Clear()
	b.size = 0
}
