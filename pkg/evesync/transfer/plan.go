package transfer

import (
	"fmt"

	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/gammazero/toposort"
)

// Step copies one settings file.
type Step struct {
	Name        string
	Kind        core.SaveKind
	Source      string
	Destination string
	DependsOn   []string
}

// Plan returns the copy steps of req in execution order. The character step
// depends on the account step, so a character file is never written unless
// its paired account file was.
func Plan(req *Request) ([]Step, error) {
	steps := make(map[string]Step, len(core.SaveKinds))
	var order []string
	var prev string
	for _, kind := range core.SaveKinds {
		step := Step{
			Name:        kind.String(),
			Kind:        kind,
			Source:      req.From.File(kind),
			Destination: req.To.File(kind),
		}
		if prev != "" {
			step.DependsOn = []string{prev}
		}
		steps[step.Name] = step
		order = append(order, step.Name)
		prev = step.Name
	}

	edges := make([]toposort.Edge, 0)
	for _, name := range order {
		for _, dep := range steps[name].DependsOn {
			if _, ok := steps[dep]; !ok {
				return nil, fmt.Errorf("step %s depends on unknown step %s", name, dep)
			}
			// dependency comes first
			edges = append(edges, toposort.Edge{dep, name})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("circular step dependency: %w", err)
	}

	planned := make([]Step, 0, len(steps))
	seen := make(map[string]bool, len(steps))
	for _, v := range sorted {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type in topological sort result: %T", v)
		}
		if step, exists := steps[name]; exists && !seen[name] {
			planned = append(planned, step)
			seen[name] = true
		}
	}
	// steps outside every edge keep declaration order
	for _, name := range order {
		if !seen[name] {
			planned = append(planned, steps[name])
			seen[name] = true
		}
	}
	return planned, nil
}
