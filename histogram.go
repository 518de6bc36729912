package main

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Histogram counts durations into fixed buckets, safe for concurrent Add.
// Bucket i holds samples under bounds[i]; the last bucket holds the rest.
type Histogram struct {
	bounds []time.Duration
	data   []int64
}

var defaultJobBounds = []time.Duration{
	time.Millisecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	20 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	time.Second,
	2 * time.Second,
}

// NewHistogram takes ascending bucket bounds; none means the job latency
// defaults.
func NewHistogram(bounds ...time.Duration) *Histogram {
	if len(bounds) == 0 {
		bounds = defaultJobBounds
	}

	return &Histogram{
		bounds: bounds,
		data:   make([]int64, len(bounds)+1),
	}
}

func (h *Histogram) Add(sample time.Duration) {
	for i, bound := range h.bounds {
		if sample < bound {
			atomic.AddInt64(&h.data[i], 1)
			return
		}
	}
	atomic.AddInt64(&h.data[len(h.bounds)], 1)
}

func (h *Histogram) Count() int64 {
	var n int64
	for i := range h.data {
		n += atomic.LoadInt64(&h.data[i])
	}
	return n
}

func (h *Histogram) Reset() {
	for i := range h.data {
		atomic.StoreInt64(&h.data[i], 0)
	}
}

func (h *Histogram) String() string {
	cols := make([]string, len(h.data))
	for i := range h.data {
		cols[i] = fmt.Sprintf("%7d", atomic.LoadInt64(&h.data[i]))
	}
	return strings.Join(cols, ",")
}

// Headers lines up with String.
func (h *Histogram) Headers() string {
	cols := make([]string, len(h.data))
	for i, bound := range h.bounds {
		cols[i] = fmt.Sprintf("%7s", "<"+bound.String())
	}
	cols[len(h.bounds)] = fmt.Sprintf("%7s", ">"+h.bounds[len(h.bounds)-1].String())
	return strings.Join(cols, ",")
}
