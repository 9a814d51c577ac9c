// Package version reports the chatbuf build version.
package version

import "runtime/debug"

// Version and Commit are set at build time with -ldflags.
var (
	Version = "development"
	Commit  = "unknown"
)

// String returns the version, suffixed with the commit when known.
func String() string {
	version, commit := Version, Commit
	if commit == "unknown" {
		commit = vcsRevision()
	}
	if commit == "unknown" || commit == "" {
		return version
	}
	return version + "+" + commit
}

// vcsRevision reads the short commit embedded by the go toolchain.
var vcsRevision = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
