package core

import (
	"time"

	"github.com/spaghettifunk/sculpt/engine/containers"
)

const AVG_COUNT int = 30

type OperationSample struct {
	Name     string
	Vertices int
	Duration time.Duration
}

// Metrics keeps a rolling window of the last AVG_COUNT operations plus running totals.
type Metrics struct {
	samples          *containers.RingQueue[OperationSample]
	TotalOperations  int
	TotalVertices    int
	AccumulatedTime  time.Duration
	SlowestOperation OperationSample
}

func NewMetrics() *Metrics {
	return &Metrics{
		samples: containers.NewRingQueue[OperationSample](AVG_COUNT),
	}
}

func (m *Metrics) Record(name string, vertices int, duration time.Duration) {
	sample := OperationSample{Name: name, Vertices: vertices, Duration: duration}
	m.samples.Push(sample)
	m.TotalOperations++
	m.TotalVertices += vertices
	m.AccumulatedTime += duration
	if duration > m.SlowestOperation.Duration {
		m.SlowestOperation = sample
	}
}

// AverageMS is the mean duration in milliseconds over the rolling window.
func (m *Metrics) AverageMS() float64 {
	if m.samples.IsEmpty() {
		return 0
	}
	var total time.Duration
	m.samples.Each(func(s OperationSample) {
		total += s.Duration
	})
	return float64(total.Microseconds()) / 1000.0 / float64(m.samples.Len())
}

// VerticesPerSecond over every recorded operation.
func (m *Metrics) VerticesPerSecond() float64 {
	if m.AccumulatedTime <= 0 {
		return 0
	}
	return float64(m.TotalVertices) / m.AccumulatedTime.Seconds()
}

func (m *Metrics) Reset() {
	m.samples = containers.NewRingQueue[OperationSample](AVG_COUNT)
	m.TotalOperations = 0
	m.TotalVertices = 0
	m.AccumulatedTime = 0
	m.SlowestOperation = OperationSample{}
}
