package version

import "runtime/debug"

// version is set with -ldflags "-X .../internal/version.version=v1.2.3" for
// release builds.
var version string

// Get returns the version of arthas-copy, preferring the linker-provided
// value over the module version recorded in build info.
func Get() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(unknown version)"
}
