// Package capability detects whether the host can run neural
// embedding search, and at what tier it should operate.
package capability

import "fmt"

// State is the neural embedding capability of the host.
type State int

const (
	// StateAvailable means the runtime, resources and model are all
	// present.
	StateAvailable State = iota
	// StateModelMissing means the runtime and resources are fine but
	// the embedding model has not been downloaded.
	StateModelMissing
	// StateUnavailable means the ONNX runtime cannot be loaded.
	StateUnavailable
	// StateInsufficient means the host lacks the resources to run
	// embeddings.
	StateInsufficient
)

// String returns the human-readable state name.
func (s State) String() string {
	switch s {
	case StateAvailable:
		return "available"
	case StateModelMissing:
		return "model-missing"
	case StateUnavailable:
		return "unavailable"
	case StateInsufficient:
		return "insufficient"
	default:
		return "unknown"
	}
}

// Capability is the detection outcome. Reason is set for every state
// except Available and carries the first failed check's explanation.
type Capability struct {
	State  State  `json:"state"`
	Reason string `json:"reason,omitempty"`
}

// SemanticReady reports whether the semantic strategy can run.
func (c Capability) SemanticReady() bool {
	return c.State == StateAvailable
}

// String formats the capability for logs and diagnostics.
func (c Capability) String() string {
	if c.Reason == "" {
		return c.State.String()
	}
	return fmt.Sprintf("%s (%s)", c.State, c.Reason)
}

// MinMemoryBytes is the minimum total memory for neural embeddings (4 GiB).
const MinMemoryBytes = 4 * 1024 * 1024 * 1024

// Details is the full check breakdown for diagnostics. Unlike Detect,
// every check runs regardless of earlier failures.
type Details struct {
	RuntimeAvailable  bool   `json:"runtime_available"`
	ResourcesAdequate bool   `json:"resources_adequate"`
	ModelAvailable    bool   `json:"model_available"`
	TotalMemoryBytes  uint64 `json:"total_memory_bytes"`
	CPUCount          int    `json:"cpu_count"`
}

// Tier returns the search tier the host supports: Full when every
// check passes, TfIdf when only statistical search fits, None when
// resources are too constrained.
func (d Details) Tier() string {
	if d.RuntimeAvailable && d.ResourcesAdequate && d.ModelAvailable {
		return "Full"
	}
	if d.ResourcesAdequate {
		return "TfIdf"
	}
	return "None"
}

// Recommendations lists actionable fixes for failed checks, in check
// order.
func (d Details) Recommendations() []string {
	var recs []string
	if !d.RuntimeAvailable {
		recs = append(recs, "Install ONNX Runtime for neural embeddings")
	}
	if !d.ResourcesAdequate {
		recs = append(recs, "Upgrade to 4GB+ RAM for neural embeddings")
	}
	if !d.ModelAvailable {
		recs = append(recs, "Place an embedding model at ~/.loupe/models/model.onnx")
	}
	return recs
}
