package usos

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// FileTermResolver resolves dydactic cycles against a terms.json file
// mapping course id -> list of term ids the course is offered in.
type FileTermResolver struct {
	terms map[string][]string
}

func NewFileTermResolver(path string) (*FileTermResolver, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read terms file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse terms file: %w", err)
	}

	var terms map[string][]string
	if err := mapstructure.Decode(raw, &terms); err != nil {
		return nil, fmt.Errorf("cannot decode terms file: %w", err)
	}
	return &FileTermResolver{terms: terms}, nil
}

func (r *FileTermResolver) ResolveTerm(courseID, cycle string) (string, error) {
	terms, ok := r.terms[courseID]
	if !ok {
		return "", fmt.Errorf("no known terms for course %v", courseID)
	}
	return BestTerm(terms, cycle, courseID)
}

// BestTerm picks the term matching the cycle exactly, falling back to
// the term equal to the cycle's year prefix.
func BestTerm(terms []string, cycle, courseID string) (string, error) {
	year := cycle
	if len(cycle) > 4 {
		year = cycle[:4]
	}

	best := ""
	for _, term := range terms {
		if term == cycle {
			return term, nil
		}
		if term == year {
			best = term
		}
	}
	if best == "" {
		return "", fmt.Errorf("failed to find matching term for course %v", courseID)
	}
	return best, nil
}
