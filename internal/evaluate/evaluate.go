// Package evaluate scores completed timetables. Evaluators are looked up
// by name in an explicitly constructed registry so scoring stays pure
// and test-friendly; nothing in here touches process-wide state.
package evaluate

import (
	"fmt"

	"usosplanner/internal/timetable"
)

// Evaluator returns the integer badness of a timetable; lower is better.
type Evaluator func(tt timetable.Timetable, ctx *Context) (int, error)

// Context carries everything an evaluator may need beyond the timetable
// itself. Dir points at the directory holding auxiliary scoring data for
// the custom evaluator; parsed data is memoized per context.
type Context struct {
	Dir string

	customData map[string]courseBadness
}

func NewContext(dir string) *Context {
	return &Context{Dir: dir}
}

type Registry struct {
	evaluators map[string]Evaluator
}

// NewRegistry returns a registry preloaded with the built-in evaluators.
func NewRegistry() *Registry {
	registry := &Registry{evaluators: make(map[string]Evaluator)}
	registry.Register("time", EvaluateTime)
	registry.Register("custom", EvaluateCustom)
	return registry
}

func (r *Registry) Register(name string, evaluator Evaluator) {
	r.evaluators[name] = evaluator
}

func (r *Registry) Get(name string) (Evaluator, error) {
	evaluator, ok := r.evaluators[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluator: %q", name)
	}
	return evaluator, nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.evaluators[name]
	return ok
}

// MinNormalize divides every score by the minimum one, so the best
// timetable always scores exactly 1. Empty input stays empty.
func MinNormalize(values []int) []float64 {
	if len(values) == 0 {
		return nil
	}
	minValue := values[0]
	for _, value := range values[1:] {
		if value < minValue {
			minValue = value
		}
	}
	normalized := make([]float64, len(values))
	for i, value := range values {
		normalized[i] = float64(value) / float64(minValue)
	}
	return normalized
}
