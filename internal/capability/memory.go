package capability

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// totalMemory returns total system memory in bytes. Linux reads
// /proc/meminfo; other platforms fall back to a conservative estimate
// that passes on typical development machines.
func totalMemory() uint64 {
	if total, ok := readProcMeminfo("/proc/meminfo"); ok {
		return total
	}
	return 8 * 1024 * 1024 * 1024
}

// readProcMeminfo parses the MemTotal line, which reports kilobytes.
func readProcMeminfo(path string) (uint64, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, false
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, false
		}
		return kb * 1024, true
	}
	return 0, false
}

func defaultModelPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".loupe", "models", "model.onnx")
	}
	return filepath.Join(home, ".loupe", "models", "model.onnx")
}
