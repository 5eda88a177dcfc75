package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/wcgraph/internal/core/domain"
)

// Pipeline sources catalog nodes.
type Pipeline interface {
	// Run executes every stage once and emits the resulting nodes.
	Run(ctx context.Context) (*RunResult, error)

	// Status returns the progress of the current or last run.
	Status() PipelineStatus
}

// RunResult summarises a completed run.
type RunResult struct {
	// NodesByType counts emitted nodes per type tag.
	NodesByType map[string]int

	// NodesEmitted is the total count of emitted nodes.
	NodesEmitted int

	// Warnings is the number of warnings raised during the run.
	Warnings int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// PipelineStatus represents the state of a pipeline run.
type PipelineStatus struct {
	// Stage is the stage currently executing.
	Stage domain.Stage

	// Running indicates if a run is in progress.
	Running bool

	// Records is the number of records held by the run.
	Records int
}
