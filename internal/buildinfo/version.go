// Package buildinfo derives the version string shown by --version from
// Go build metadata.
package buildinfo

import "runtime/debug"

// Version returns the version string for the current build.
//
// Builds installed from a tagged release report the tag (e.g. "v0.2.0").
// Development builds report "dev-<hash>", with a "-dirty" suffix when
// the working tree had uncommitted changes, or plain "dev" when no VCS
// information was recorded.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return devVersion(info.Settings)
}

func devVersion(settings []debug.BuildSetting) string {
	var revision string
	var dirty bool

	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}

	v := "dev-" + revision
	if dirty {
		v += "-dirty"
	}
	return v
}
