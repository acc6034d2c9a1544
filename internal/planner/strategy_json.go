package planner

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveTree persists a strategy tree so construction and evaluation can
// run as separate invocations.
func SaveTree(path string, tree *Node) error {
	bytes, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode strategy tree: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("cannot write strategy tree: %w", err)
	}
	return nil
}

func LoadTree(path string) (*Node, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read strategy tree: %w", err)
	}
	var tree Node
	if err := json.Unmarshal(bytes, &tree); err != nil {
		return nil, fmt.Errorf("cannot decode strategy tree: %w", err)
	}
	return &tree, nil
}
