package queue

import "iter"

type node[C Chunk] struct {
	value C
	next  *node[C]
}

// List is a singly-linked FIFO of chunks counted in the units of its strategy.
type List[C Chunk] struct {
	head  *node[C]
	tail  *node[C]
	len   int
	units Units[C]
}

// NewList creates a list that counts in units.
func NewList[C Chunk](units Units[C], options ...Option[C]) *List[C] {
	if debugAssertions && units == nil {
		violation(ErrModeMismatch, "nil unit strategy")
	}

	l := &List[C]{units: units}

	var opts listOptions[C]
	for _, opt := range options {
		opt(&opts)
	}
	for _, c := range opts.initial {
		l.Push(c)
	}

	return l
}

// Len returns the number of chunks, not units.
func (l *List[C]) Len() int {
	return l.len
}

// Units returns the strategy the list counts in.
func (l *List[C]) Units() Units[C] {
	return l.units
}

// Push appends c as the new tail.
func (l *List[C]) Push(c C) {
	n := &node[C]{value: c}
	if l.len == 0 {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.len++
}

// Unshift prepends c as the new head.
func (l *List[C]) Unshift(c C) {
	n := &node[C]{value: c, next: l.head}
	if l.len == 0 {
		l.tail = n
	}
	l.head = n
	l.len++
}

// Shift removes and returns the head chunk. It reports false on an empty list.
func (l *List[C]) Shift() (zero C, _ bool) {
	if l.len == 0 {
		return zero, false
	}

	current := l.head
	if l.len == 1 {
		l.head = nil
		l.tail = nil
	} else {
		l.head = current.next
	}
	l.len--

	current.next = nil
	return current.value, true
}

// Peek returns the head chunk without removing it.
func (l *List[C]) Peek() (zero C, _ bool) {
	if l.len == 0 {
		return zero, false
	}
	return l.head.value, true
}

// Clear drops every chunk.
func (l *List[C]) Clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}

// All yields the chunks from head to tail. The list must not be modified
// while the sequence is being ranged over.
func (l *List[C]) All() iter.Seq[C] {
	return func(yield func(C) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Consume removes exactly n units from the front of the list and returns them
// as one value. The caller guarantees 1 <= n <= units buffered.
//
// A request shorter than the head chunk splits it and leaves Len unchanged.
// A request matching the head chunk behaves like Shift. A longer request
// drains whole chunks and splits the chunk where it runs out.
func (l *List[C]) Consume(n int) C {
	if n < 1 {
		if debugAssertions {
			violation(ErrInvalidCount, "consume %d units", n)
		}
		var zero C
		return zero
	}

	if l.head == nil {
		if debugAssertions {
			violation(ErrEmptyQueue, "consume %d units", n)
		}
		return l.units.Gather(n).Result()
	}

	head := l.head
	size := l.units.Size(head.value)
	switch {
	case n < size:
		front, rest := l.units.Split(head.value, n)
		head.value = rest
		return front
	case n == size:
		c, _ := l.Shift()
		return c
	}

	return l.consumeSpanning(n)
}

func (l *List[C]) consumeSpanning(n int) C {
	g := l.units.Gather(n)
	need := n

	for l.head != nil && need > 0 {
		c := l.head.value
		size := l.units.Size(c)
		if need < size {
			front, rest := l.units.Split(c, need)
			g.Append(front)
			l.head.value = rest
			need = 0
			break
		}

		// Zero-size chunks are drained here and count for nothing.
		g.Append(c)
		need -= size
		l.Shift()
	}

	if debugAssertions && need > 0 {
		violation(ErrConsumeExceedsAvailable, "%d of %d units missing", need, n)
	}

	return g.Result()
}
