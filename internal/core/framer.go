package core

import (
	"unicode/utf8"

	"github.com/timzifer/chunkqueue"
	"github.com/timzifer/chunkqueue/internal/config"
)

// framer is the consumer side buffer of one run.
type framer interface {
	push(p []byte)
	// finish flushes anything held back for the next chunk.
	finish()
	available() int
	next(n int) (frame []byte, drained int, err error)
}

func newFramer(mode config.Mode) framer {
	if mode == config.ModeText {
		return &textFramer{buf: chunkqueue.NewTextBuffer()}
	}
	return &byteFramer{buf: chunkqueue.NewByteBuffer()}
}

type byteFramer struct {
	buf *chunkqueue.ByteBuffer
}

func (f *byteFramer) push(p []byte) {
	f.buf.PushChunk(p)
}

func (f *byteFramer) finish() {}

func (f *byteFramer) available() int {
	return f.buf.Len()
}

func (f *byteFramer) next(n int) ([]byte, int, error) {
	before := f.buf.Chunks()
	p, err := f.buf.Next(n)
	return p, before - f.buf.Chunks(), err
}

// textFramer decodes chunks into text. A rune cut off at the end of a chunk
// waits in carry for the rest of its bytes.
type textFramer struct {
	buf   *chunkqueue.TextBuffer
	carry []byte
}

func (f *textFramer) push(p []byte) {
	var s string
	s, f.carry = splitUTF8(f.carry, p)
	f.buf.WriteString(s)
}

func (f *textFramer) finish() {
	if len(f.carry) > 0 {
		f.buf.WriteString(string(f.carry))
		f.carry = nil
	}
}

func (f *textFramer) available() int {
	return f.buf.Len()
}

func (f *textFramer) next(n int) ([]byte, int, error) {
	before := f.buf.Chunks()
	s, err := f.buf.Next(n)
	return []byte(s), before - f.buf.Chunks(), err
}

// splitUTF8 prepends carry to p and returns the longest prefix that does not
// end in an incomplete rune, plus the incomplete tail. Invalid bytes are not
// held back; they count as one rune each.
func splitUTF8(carry, p []byte) (string, []byte) {
	if len(carry) > 0 {
		p = append(carry, p...)
	}

	cut := len(p)
	for i := len(p) - 1; i >= 0 && i >= len(p)-utf8.UTFMax; i-- {
		if utf8.RuneStart(p[i]) {
			if !utf8.FullRune(p[i:]) {
				cut = i
			}
			break
		}
	}

	var rest []byte
	if cut < len(p) {
		rest = append([]byte(nil), p[cut:]...)
	}
	return string(p[:cut]), rest
}
