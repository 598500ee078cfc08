// Package gathering holds the data-gathering stage pool: independent
// stages that enrich a session with transport, lodging, points of
// interest, dining and budget data. Stages never fail; provider errors
// fall back to deterministic synthetic data.
package gathering

import (
	"context"
	"fmt"

	"tripflow/models"
)

// Stage names.
const (
	StageTransportAir    = "transport-air"
	StageTransportGround = "transport-ground"
	StageLodging         = "lodging"
	StagePOI             = "points-of-interest"
	StageDining          = "dining"
	StageBudget          = "budget"
)

// Stage is one registered unit of gathering work. Run mutates the
// session in place and must not return provider errors; only store-level
// problems bubble up through the orchestrator.
type Stage struct {
	Name      string
	DependsOn []string
	Run       func(ctx context.Context, session *models.Session)
}

// Registry is the declarative stage registry the orchestrator sequences
// instead of hand-written branching.
type Registry struct {
	stages map[string]*Stage
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{stages: make(map[string]*Stage)}
}

func (r *Registry) Register(stage *Stage) {
	if _, exists := r.stages[stage.Name]; !exists {
		r.order = append(r.order, stage.Name)
	}
	r.stages[stage.Name] = stage
}

func (r *Registry) Get(name string) (*Stage, bool) {
	s, ok := r.stages[name]
	return s, ok
}

// Names returns registered stage names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Plan topologically sorts the selected stages into batches; stages in
// one batch have no dependencies on each other and may run concurrently.
// Dependencies outside the selected set are ignored (unselected stages
// are simply skipped).
func (r *Registry) Plan(selected []string) ([][]*Stage, error) {
	want := make(map[string]bool, len(selected))
	for _, name := range selected {
		if _, ok := r.stages[name]; !ok {
			return nil, fmt.Errorf("unknown stage %q", name)
		}
		want[name] = true
	}

	done := make(map[string]bool)
	var batches [][]*Stage
	remaining := len(want)

	for remaining > 0 {
		var batch []*Stage
		for _, name := range r.order {
			if !want[name] || done[name] {
				continue
			}
			stage := r.stages[name]
			ready := true
			for _, dep := range stage.DependsOn {
				if want[dep] && !done[dep] {
					ready = false
					break
				}
			}
			if ready {
				batch = append(batch, stage)
			}
		}
		if len(batch) == 0 {
			return nil, fmt.Errorf("dependency cycle among stages %v", selected)
		}
		for _, stage := range batch {
			done[stage.Name] = true
			remaining--
		}
		batches = append(batches, batch)
	}
	return batches, nil
}
