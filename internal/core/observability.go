package core

import (
	"context"
	"time"
)

// MetricsRecorder receives the outcome and latency of every repository
// operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

// Operation names reported to the MetricsRecorder.
const (
	OpCreateRoom      = "create_room"
	OpUpdateRoom      = "update_room"
	OpCreateItem      = "create_item"
	OpUpdateItem      = "update_item"
	OpApplyManual     = "apply_manual"
	OpAddProject      = "add_project"
	OpDeleteProject   = "delete_project"
	OpImport          = "import"
	OpClear           = "clear"
	OpSavePreferences = "save_preferences"
)
