//go:build !darwin && !linux && !freebsd

package capability

// probeRuntime always fails on platforms without dlopen support.
// Statistical search tiers remain fully functional.
func probeRuntime() bool {
	return false
}
