package scanner

// DefaultMaxFileSize is the per-file size cap in bytes (1 MiB).
const DefaultMaxFileSize int64 = 1024 * 1024

// Options configures a scan.
type Options struct {
	// RootDir is the directory to scan. Defaults to ".".
	RootDir string

	// Include restricts scanning to files matching these patterns.
	// Empty means include everything.
	Include []string

	// Exclude skips files and directories matching these patterns, in
	// addition to the built-in skip list.
	Exclude []string

	// Extensions restricts scanning to files with these extensions
	// (without the leading dot). Empty means all extensions.
	Extensions []string

	// MaxFileSize skips files larger than this many bytes.
	MaxFileSize int64
}

// File is a scanned text file split into lines.
type File struct {
	// Path is relative to the scan root, with forward slashes.
	Path string
	// Lines holds the file content, one entry per line.
	Lines []string
}

// Result streams either a scanned file or a non-fatal error.
type Result struct {
	File File
	Err  error
}
