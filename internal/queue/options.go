package queue

type listOptions[C Chunk] struct {
	initial []C
}

// Option configures a List at construction time.
type Option[C Chunk] func(*listOptions[C])

// WithChunks seeds the list with chunks in push order.
func WithChunks[C Chunk](chunks ...C) Option[C] {
	return func(opts *listOptions[C]) {
		opts.initial = append(opts.initial[:0], chunks...)
	}
}
