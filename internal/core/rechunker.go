package core

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/timzifer/chunkqueue/internal/config"
	"github.com/timzifer/chunkqueue/internal/telemetry"
)

// chunkBacklog bounds how many read chunks may wait for the consumer.
const chunkBacklog = 4

// Frame beschreibt einen ausgegebenen Frame.
type Frame struct {
	Index   int
	Units   int
	Drained int
}

// Rechunker zerlegt einen beliebig gestückelten Datenstrom in Frames fester Größe.
//
// Ein Producer liest Chunks aus der Quelle, ein Consumer besitzt exklusiv den
// Puffer und gibt jeden vollständigen Frame aus. Beide laufen in einer
// errgroup; der erste Fehler bricht den Lauf ab.
type Rechunker struct {
	mu      sync.Mutex
	cfg     config.Config
	log     logrus.FieldLogger
	metrics *telemetry.ConsumeMetrics
	frames  atomic.Uint64
}

// Option configures a Rechunker.
type Option func(*Rechunker)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Rechunker) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMetrics records consume measurements on m instead of the global metrics.
func WithMetrics(m *telemetry.ConsumeMetrics) Option {
	return func(r *Rechunker) {
		if m != nil {
			r.metrics = m
		}
	}
}

type frameObserverKey struct{}

// WithFrameObserver returns a context that notifies observer after every frame
// Run hands to its emit callback.
func WithFrameObserver(ctx context.Context, observer func(Frame)) context.Context {
	if observer == nil {
		return ctx
	}
	return context.WithValue(ctx, frameObserverKey{}, observer)
}

// NewRechunker erzeugt einen neuen Rechunker.
func NewRechunker(cfg config.Config, options ...Option) (*Rechunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	discard := logrus.New()
	discard.Out = io.Discard

	r := &Rechunker{
		cfg:     cfg,
		log:     discard,
		metrics: telemetry.DefaultConsumeMetrics(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// Frames returns the number of frames emitted over all runs.
func (r *Rechunker) Frames() uint64 {
	return r.frames.Load()
}

// Run reads src until EOF and calls emit with every frame. A frame passed to
// emit is only valid until emit returns. Runs on one Rechunker are serialised.
func (r *Rechunker) Run(ctx context.Context, src io.Reader, emit func(frame []byte) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.log.WithFields(logrus.Fields{
		"mode":  r.cfg.Mode,
		"frame": r.cfg.FrameSize,
	})
	log.Debug("rechunk started")

	g, ctx := errgroup.WithContext(ctx)
	chunks := make(chan []byte, chunkBacklog)

	g.Go(func() error {
		// chunks is only closed at EOF; a failed source must not look like
		// the end of the stream to the consumer.
		if err := r.produce(ctx, src, chunks); err != nil {
			return err
		}
		close(chunks)
		return nil
	})
	g.Go(func() error {
		return r.consume(ctx, log, chunks, emit)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Debug("rechunk failed")
		return err
	}
	return nil
}

func (r *Rechunker) produce(ctx context.Context, src io.Reader, chunks chan<- []byte) error {
	buf := make([]byte, r.cfg.ReadSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf)
			select {
			case chunks <- chunk:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read source")
		}
	}
}

func (r *Rechunker) consume(ctx context.Context, log logrus.FieldLogger, chunks <-chan []byte, emit func([]byte) error) error {
	f := newFramer(r.cfg.Mode)
	observer, _ := ctx.Value(frameObserverKey{}).(func(Frame))
	size := r.cfg.FrameSize
	index := 0

	flush := func(final bool) error {
		for {
			n := f.available()
			if n == 0 || (n < size && !(final && r.cfg.Partial)) {
				return nil
			}
			if n > size {
				n = size
			}

			_, finish := r.metrics.Trace(ctx)
			frame, drained, err := f.next(n)
			finish(n, drained, err)
			if err != nil {
				return err
			}
			if err := emit(frame); err != nil {
				return errors.Wrapf(err, "emit frame %d", index)
			}

			r.frames.Add(1)
			if observer != nil {
				observer(Frame{Index: index, Units: n, Drained: drained})
			}
			index++
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case p, ok := <-chunks:
			if !ok {
				f.finish()
				if err := flush(true); err != nil {
					return err
				}
				log.WithFields(logrus.Fields{
					"frames":    index,
					"discarded": f.available(),
				}).Debug("rechunk finished")
				return nil
			}
			f.push(p)
			if err := flush(false); err != nil {
				return err
			}
		}
	}
}
