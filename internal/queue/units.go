package queue

import (
	"strings"
	"unicode/utf8"
)

// Chunk is the set of payload kinds a List can hold.
type Chunk interface {
	[]byte | string
}

// Units decides what a List counts and how a chunk is cut.
type Units[C Chunk] interface {
	// Size reports the number of units in c.
	Size(c C) int
	// Split cuts c after n units. 0 <= n <= Size(c).
	Split(c C, n int) (front, rest C)
	// Gather returns an accumulator for a result of n units.
	Gather(n int) Gatherer[C]
}

// Gatherer accumulates the pieces of a consume that spans chunks.
type Gatherer[C Chunk] interface {
	Append(c C)
	Result() C
}

// Bytes counts bytes. Split re-slices, so both halves alias the chunk.
type Bytes struct{}

var _ Units[[]byte] = Bytes{}

// Size returns len(c).
func (Bytes) Size(c []byte) int {
	return len(c)
}

// Split caps front at n so appending to it cannot clobber rest.
func (Bytes) Split(c []byte, n int) ([]byte, []byte) {
	return c[:n:n], c[n:]
}

// Gather copies pieces into one buffer of n bytes.
func (Bytes) Gather(n int) Gatherer[[]byte] {
	return &byteGatherer{buf: make([]byte, n)}
}

type byteGatherer struct {
	buf []byte
	off int
}

func (g *byteGatherer) Append(c []byte) {
	g.off += copy(g.buf[g.off:], c)
}

func (g *byteGatherer) Result() []byte {
	return g.buf
}

// Runes counts Unicode code points. Invalid UTF-8 bytes count one unit each.
type Runes struct{}

var _ Units[string] = Runes{}

// Size returns the rune count of s.
func (Runes) Size(s string) int {
	return utf8.RuneCountInString(s)
}

// Split cuts s before its n-th rune.
func (Runes) Split(s string, n int) (string, string) {
	i := runeOffset(s, n)
	return s[:i], s[i:]
}

// Gather concatenates pieces holding n runes in total.
func (Runes) Gather(n int) Gatherer[string] {
	g := &runeGatherer{}
	g.sb.Grow(n)
	return g
}

// runeOffset returns the byte offset at which the n-th rune of s starts,
// or len(s) when s holds n runes or fewer.
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

type runeGatherer struct {
	sb strings.Builder
}

func (g *runeGatherer) Append(s string) {
	g.sb.WriteString(s)
}

func (g *runeGatherer) Result() string {
	return g.sb.String()
}
