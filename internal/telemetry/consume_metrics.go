package telemetry

import (
	"context"
	"sync/atomic"
	"time"
)

// ConsumeMetrics fasst Messwerte zu Consume-Aufrufen zusammen.
type ConsumeMetrics struct {
	totalDuration atomic.Int64
	attempts      atomic.Uint64
	failures      atomic.Uint64
	units         atomic.Uint64
	drained       atomic.Uint64
}

// Snapshot ist eine Momentaufnahme der Zähler.
type Snapshot struct {
	Attempts uint64
	Failures uint64
	Units    uint64
	Drained  uint64
	Average  time.Duration
}

var defaultConsumeMetrics ConsumeMetrics

// DefaultConsumeMetrics liefert die globalen Metriken.
func DefaultConsumeMetrics() *ConsumeMetrics {
	return &defaultConsumeMetrics
}

// TraceConsume startet eine Messung auf den globalen Metriken.
func TraceConsume(ctx context.Context) (context.Context, func(units, drained int, err error)) {
	return defaultConsumeMetrics.Trace(ctx)
}

// Trace startet eine Messung und liefert eine Abschlussfunktion, die Dauer,
// verbrauchte Einheiten, geleerte Knoten und Fehlerzustand meldet.
func (m *ConsumeMetrics) Trace(ctx context.Context) (context.Context, func(units, drained int, err error)) {
	start := time.Now()
	m.attempts.Add(1)
	return ctx, func(units, drained int, err error) {
		elapsed := time.Since(start)
		m.totalDuration.Add(elapsed.Nanoseconds())
		if err != nil {
			m.failures.Add(1)
			return
		}
		m.units.Add(uint64(units))
		m.drained.Add(uint64(drained))
	}
}

// Snapshot gibt die gesammelten Werte zurück.
func (m *ConsumeMetrics) Snapshot() Snapshot {
	s := Snapshot{
		Attempts: m.attempts.Load(),
		Failures: m.failures.Load(),
		Units:    m.units.Load(),
		Drained:  m.drained.Load(),
	}
	if s.Attempts == 0 {
		return s
	}
	s.Average = time.Duration(m.totalDuration.Load() / int64(s.Attempts))
	return s
}

// Reset setzt alle Zähler zurück.
func (m *ConsumeMetrics) Reset() {
	m.totalDuration.Store(0)
	m.attempts.Store(0)
	m.failures.Store(0)
	m.units.Store(0)
	m.drained.Store(0)
}
