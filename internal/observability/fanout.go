package observability

import (
	"context"
	"time"
)

// Recorder matches the repository's metrics hook.
type Recorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Fanout forwards every observation to each non-nil recorder.
type Fanout []Recorder

// NewFanout drops nil recorders.
func NewFanout(recorders ...Recorder) Fanout {
	out := make(Fanout, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (f Fanout) Observe(ctx context.Context, operation string, success bool, duration time.Duration) {
	for _, r := range f {
		r.Observe(ctx, operation, success, duration)
	}
}
