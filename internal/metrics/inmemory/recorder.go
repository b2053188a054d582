package inmemory

import (
	"sync"
	"time"
)

// Recorder keeps load counters in memory. Safe for concurrent use.
type Recorder struct {
	mu           sync.Mutex
	successes    uint64
	failures     uint64
	superseded   uint64
	lastDuration time.Duration
}

// Stats is a point-in-time copy of the counters.
type Stats struct {
	Successes        uint64 `json:"successes"`
	Failures         uint64 `json:"failures"`
	Superseded       uint64 `json:"superseded"`
	LastDurationMSec int64  `json:"lastDurationMsec"`
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordSuccess(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes++
	r.lastDuration = d
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func (r *Recorder) RecordSuperseded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.superseded++
}

// Snapshot returns a copy of the current counters.
func (r *Recorder) Snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Successes:        r.successes,
		Failures:         r.failures,
		Superseded:       r.superseded,
		LastDurationMSec: r.lastDuration.Milliseconds(),
	}
}
