// Package config holds the handful of process-wide constants the CLI and
// module loader need: version string, recognized source extension, and
// the o2l.toml entrypoint manifest's key name.
package config

// Version is the current o2l version. Hardcoded rather than derived from
// VCS info, matching the teacher's own Version var (SPEC_FULL.md §E).
var Version = "0.1.0"

// SourceFileExt is the canonical extension for o2l source files.
const SourceFileExt = ".obq"

// SourceFileExtensions lists the recognized source file extensions. The
// CLI's entrypoint resolution does not read it; TrimSourceExt and
// HasSourceExt check SourceFileExt alone.
var SourceFileExtensions = []string{".obq"}

// ManifestFile is the naive-TOML entrypoint manifest (§B.3): one
// `key = "value"` pair per line, no nesting, no library.
const ManifestFile = "o2l.toml"

// ManifestEntrypointKey is the manifest key the naive scanner looks for.
const ManifestEntrypointKey = "entrypoint"

// TrimSourceExt removes the recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	const ext = SourceFileExt
	if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
		return name[:len(name)-len(ext)]
	}
	return name
}

// HasSourceExt returns true if the path ends with the recognized source
// extension.
func HasSourceExt(path string) bool {
	const ext = SourceFileExt
	return len(path) >= len(ext) && path[len(path)-len(ext):] == ext
}
