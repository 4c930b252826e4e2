//go:build darwin || linux || freebsd

package capability

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ebitengine/purego"
)

// probeRuntime reports whether the ONNX Runtime shared library can be
// loaded. Candidate locations, in order: ORT_DYLIB_PATH, each
// LD_LIBRARY_PATH entry, then the standard install paths.
func probeRuntime() bool {
	for _, path := range candidateLibraries() {
		if tryLoad(path) {
			return true
		}
	}
	return false
}

func candidateLibraries() []string {
	var paths []string

	if ort := os.Getenv("ORT_DYLIB_PATH"); ort != "" {
		paths = append(paths, ort)
	}

	libName := "libonnxruntime.so"
	if runtime.GOOS == "darwin" {
		libName = "libonnxruntime.dylib"
	}

	if ld := os.Getenv("LD_LIBRARY_PATH"); ld != "" {
		for _, dir := range strings.Split(ld, ":") {
			if dir == "" {
				continue
			}
			paths = append(paths, filepath.Join(dir, libName))
		}
	}

	paths = append(paths,
		libName+".1.16.0",
		libName,
		filepath.Join("/usr/lib", libName),
		filepath.Join("/usr/local/lib", libName),
	)
	return paths
}

// tryLoad attempts a dlopen and immediately closes the handle. Load
// success is all the probe needs to know.
func tryLoad(path string) bool {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return false
	}
	_ = purego.Dlclose(lib)
	return true
}
