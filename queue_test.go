package chunkqueue

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextQueueScenarios(t *testing.T) {
	t.Run("spanning consume", func(t *testing.T) {
		q := NewTextQueue()
		q.Push("ab")
		q.Push("cd")

		require.Equal(t, "abc", q.Consume(3))
		require.Equal(t, 1, q.Len())
		head, ok := q.Peek()
		require.True(t, ok)
		require.Equal(t, "d", head)

		q.Push("e")
		require.Equal(t, []string{"d", "e"}, slices.Collect(q.All()))
		require.Equal(t, "de", q.Consume(2))
		require.Zero(t, q.Len())
	})

	t.Run("empty chunk in the middle", func(t *testing.T) {
		q := NewTextQueue("x", "", "y")

		require.Equal(t, "xy", q.Consume(2))
		require.Equal(t, 0, q.Len())
	})

	t.Run("multibyte runes", func(t *testing.T) {
		q := NewTextQueue("日本", "語テキスト")

		require.Equal(t, "日本語", q.Consume(3))
		require.Equal(t, "テ", q.Consume(1))
		require.Equal(t, "キスト", q.Join(""))
	})
}

func TestTextQueueCountsSplitRuneAsBytes(t *testing.T) {
	q := NewTextQueue()
	q.Push("\xe2")
	q.Push("\x82\xac")

	require.Equal(t, "\xe2", q.Consume(1))
	require.Equal(t, "\x82", q.Consume(1))
	require.Equal(t, "\xac", q.Consume(1))
	require.Zero(t, q.Len())
}

func TestByteQueueScenarios(t *testing.T) {
	t.Run("spanning consume", func(t *testing.T) {
		q := NewByteQueue()
		q.Push([]byte{1, 2})
		q.Push([]byte{3, 4, 5})

		require.Equal(t, []byte{1, 2, 3, 4}, q.Consume(4))
		require.Equal(t, 1, q.Len())
		head, ok := q.Peek()
		require.True(t, ok)
		require.Equal(t, []byte{5}, head)

		q.Push([]byte{6})
		require.Equal(t, [][]byte{{5}, {6}}, slices.Collect(q.All()))
		require.Equal(t, []byte{5, 6}, q.Consume(2))
		require.Zero(t, q.Len())
	})

	t.Run("exact consume equals shift", func(t *testing.T) {
		q := NewByteQueue([]byte{7})
		r := NewByteQueue([]byte{7})

		shifted, ok := r.Shift()
		require.True(t, ok)
		require.Equal(t, shifted, q.Consume(1))
		require.Equal(t, 0, q.Len())

		_, ok = q.Peek()
		require.False(t, ok)
	})
}

func TestQueueEmptyAccess(t *testing.T) {
	bq := NewByteQueue()
	_, ok := bq.Shift()
	require.False(t, ok)
	_, ok = bq.Peek()
	require.False(t, ok)

	tq := NewTextQueue()
	_, ok = tq.Shift()
	require.False(t, ok)
	_, ok = tq.Peek()
	require.False(t, ok)
}

func TestQueueUnshiftAndClear(t *testing.T) {
	q := NewTextQueue("b")
	q.Unshift("a")
	q.Push("c")

	require.Equal(t, "a|b|c", q.Join("|"))
	require.Equal(t, 3, q.Len())
	require.Equal(t, "TextQueue(len=3)", q.String())

	q.Clear()
	require.Equal(t, 0, q.Len())
	require.Equal(t, "", q.Join("|"))
}

func TestByteQueueConcatAll(t *testing.T) {
	q := NewByteQueue([]byte("ab"), []byte("cde"), []byte("f"))

	require.Equal(t, []byte("abcdef"), q.ConcatAll(6))
	require.Equal(t, 3, q.Len(), "ConcatAll must not drain")

	require.Equal(t, []byte("abcd"), q.ConcatAll(4), "short total truncates")
	require.Equal(t, []byte("abcdef\x00\x00"), q.ConcatAll(8), "long total zero pads")
	require.Equal(t, []byte{}, NewByteQueue().ConcatAll(0))
}

func TestByteQueueJoin(t *testing.T) {
	q := NewByteQueue([]byte("a"), []byte("b"))

	require.Equal(t, []byte("a, b"), q.Join([]byte(", ")))
	require.Equal(t, "ByteQueue(len=2)", q.String())
}

func TestQueueAllIteratesInOrder(t *testing.T) {
	q := NewByteQueue([]byte("x"), []byte("yz"))

	var seen [][]byte
	for c := range q.All() {
		seen = append(seen, c)
	}
	require.Equal(t, [][]byte{[]byte("x"), []byte("yz")}, seen)

	seen = seen[:0]
	for c := range q.All() {
		seen = append(seen, c)
	}
	require.Len(t, seen, 2, "iteration must be restartable")
}

func BenchmarkConsumeSpanning(b *testing.B) {
	chunk := bytes.Repeat([]byte{'a'}, 1500)

	b.Run("ByteQueue", func(b *testing.B) {
		q := NewByteQueue()
		for i := 0; i < b.N; i++ {
			q.Push(chunk)
			q.Push(chunk)
			q.Consume(2000)
			q.Consume(1000)
		}
	})

	b.Run("Std", func(b *testing.B) {
		var buf bytes.Buffer
		out := make([]byte, 2000)
		for i := 0; i < b.N; i++ {
			buf.Write(chunk)
			buf.Write(chunk)
			buf.Read(out)
			buf.Read(out[:1000])
		}
	})

	b.Run("TextQueue", func(b *testing.B) {
		s := strings.Repeat("ä", 750)
		q := NewTextQueue()
		for i := 0; i < b.N; i++ {
			q.Push(s)
			q.Push(s)
			q.Consume(1000)
			q.Consume(500)
		}
	})
}
