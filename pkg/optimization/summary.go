// Package optimization provides shared data structures for optimization results.
package optimization

// FieldTimeframeDays is the scenario field searched by the horizon optimizer.
const FieldTimeframeDays = "timeframeDays"

// Summary captures the result of a single optimization directive.
type Summary struct {
	Scope      string   `json:"scope"`
	TargetName string   `json:"targetName"`
	Field      string   `json:"field"`
	Original   float64  `json:"original"`
	Value      float64  `json:"value"`
	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Unmet      []string `json:"unmet,omitempty"`
	Notes      []string `json:"notes,omitempty"`
}
