package capability

import (
	"os"
	"runtime"
	"sync"
)

// DisableEnvVar force-disables neural embeddings when set, ahead of
// any library probing. Useful in CI and constrained environments.
const DisableEnvVar = "LOUPE_DISABLE_ONNX"

// Detector probes the host for neural embedding capability. Detection
// runs once per Detector; construct a fresh Detector to re-probe.
type Detector struct {
	probe     func() bool
	memory    func() uint64
	getenv    func(string) string
	modelPath string

	once   sync.Once
	cached Capability
}

// Option configures a Detector.
type Option func(*Detector)

// WithProbe overrides the runtime library probe.
func WithProbe(probe func() bool) Option {
	return func(d *Detector) {
		d.probe = probe
	}
}

// WithMemory overrides the total-memory reader.
func WithMemory(memory func() uint64) Option {
	return func(d *Detector) {
		d.memory = memory
	}
}

// WithGetenv overrides environment lookup.
func WithGetenv(getenv func(string) string) Option {
	return func(d *Detector) {
		d.getenv = getenv
	}
}

// WithModelPath overrides the embedding model location.
func WithModelPath(path string) Option {
	return func(d *Detector) {
		d.modelPath = path
	}
}

// NewDetector creates a detector with the given options.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		probe:     probeRuntime,
		memory:    totalMemory,
		getenv:    os.Getenv,
		modelPath: defaultModelPath(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect checks capability in strict order: environment override,
// runtime library, memory, model artifact. The first failed check
// decides the outcome and later checks do not run. The result is
// cached for the lifetime of the Detector.
func (d *Detector) Detect() Capability {
	d.once.Do(func() {
		d.cached = d.detect()
	})
	return d.cached
}

func (d *Detector) detect() Capability {
	if d.getenv(DisableEnvVar) != "" {
		return Capability{
			State:  StateUnavailable,
			Reason: "neural embeddings disabled by environment variable",
		}
	}

	if !d.probe() {
		return Capability{
			State:  StateUnavailable,
			Reason: "ONNX Runtime not found",
		}
	}

	if d.memory() < MinMemoryBytes {
		return Capability{
			State:  StateInsufficient,
			Reason: "insufficient RAM (< 4GB)",
		}
	}

	if !d.modelAvailable() {
		return Capability{
			State:  StateModelMissing,
			Reason: "embedding model not found at " + d.modelPath,
		}
	}

	return Capability{State: StateAvailable}
}

// Details runs every check without short-circuiting, for the doctor
// command. Results are not cached.
func (d *Detector) Details() Details {
	mem := d.memory()
	return Details{
		RuntimeAvailable:  d.getenv(DisableEnvVar) == "" && d.probe(),
		ResourcesAdequate: mem >= MinMemoryBytes,
		ModelAvailable:    d.modelAvailable(),
		TotalMemoryBytes:  mem,
		CPUCount:          runtime.NumCPU(),
	}
}

// ModelPath returns the embedding model location this detector checks.
func (d *Detector) ModelPath() string {
	return d.modelPath
}

func (d *Detector) modelAvailable() bool {
	info, err := os.Stat(d.modelPath)
	return err == nil && !info.IsDir()
}
