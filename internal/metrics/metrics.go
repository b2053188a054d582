package metrics

import "time"

// Recorder counts replay load outcomes.
type Recorder interface {
	RecordSuccess(d time.Duration)
	RecordFailure()
	RecordSuperseded()
}

// Noop discards all recordings.
type Noop struct{}

func (Noop) RecordSuccess(time.Duration) {}
func (Noop) RecordFailure()              {}
func (Noop) RecordSuperseded()           {}
