// Package version reports the controlroom build.
//
// Version and Commit can be set at link time:
//
//	go build -ldflags="-X github.com/muurk/controlroom/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/controlroom/internal/version.Commit=abc123"
//
// Unset values are filled from the VCS stamp in the build info, then from
// a "dev" fallback.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	// Version is the release version, "dev-YYYYMMDD" for untagged builds
	Version = ""
	// Commit is the short git revision, suffixed "-dirty" for modified trees
	Commit = ""
)

const shortRevision = 7

func init() {
	info, _ := debug.ReadBuildInfo()
	Version, Commit = resolve(Version, Commit, info, time.Now())
}

// resolve fills the empty values from info, falling back to now
func resolve(version, commit string, info *debug.BuildInfo, now time.Time) (string, string) {
	if info != nil {
		vcs := make(map[string]string, 3)
		for _, s := range info.Settings {
			vcs[s.Key] = s.Value
		}

		if rev := vcs["vcs.revision"]; commit == "" && rev != "" {
			if len(rev) > shortRevision {
				rev = rev[:shortRevision]
			}
			if vcs["vcs.modified"] == "true" {
				rev += "-dirty"
			}
			commit = rev
		}

		// build info carries no tags, so the commit date stands in
		if version == "" {
			if t, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
				version = "dev-" + t.Format("20060102")
			}
		}
	}

	if version == "" {
		version = "dev-" + now.Format("20060102-150405")
	}
	if commit == "" {
		commit = "unknown"
	}
	return version, commit
}

// Full returns the version with its commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent identifies controlroom in outgoing requests
func UserAgent() string {
	return "controlroom/" + Version
}
