package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func buildInfo(settings map[string]string) *debug.BuildInfo {
	info := &debug.BuildInfo{}
	for k, v := range settings {
		info.Settings = append(info.Settings, debug.BuildSetting{Key: k, Value: v})
	}
	return info
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		name        string
		version     string
		commit      string
		info        *debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{
			name:        "ldflags win",
			version:     "v1.2.3",
			commit:      "abc123",
			info:        buildInfo(map[string]string{"vcs.revision": "ffffffffff"}),
			wantVersion: "v1.2.3",
			wantCommit:  "abc123",
		},
		{
			name: "vcs stamp",
			info: buildInfo(map[string]string{
				"vcs.revision": "0123456789abcdef",
				"vcs.time":     "2026-01-02T03:04:05Z",
			}),
			wantVersion: "dev-20260102",
			wantCommit:  "0123456",
		},
		{
			name: "dirty tree",
			info: buildInfo(map[string]string{
				"vcs.revision": "0123456789abcdef",
				"vcs.modified": "true",
			}),
			wantVersion: "dev-20260304-050607",
			wantCommit:  "0123456-dirty",
		},
		{
			name:        "no build info",
			wantVersion: "dev-20260304-050607",
			wantCommit:  "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c := resolve(tt.version, tt.commit, tt.info, now)
			if v != tt.wantVersion {
				t.Errorf("version = %q, want %q", v, tt.wantVersion)
			}
			if c != tt.wantCommit {
				t.Errorf("commit = %q, want %q", c, tt.wantCommit)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); !strings.HasPrefix(got, "controlroom/") {
		t.Errorf("UserAgent() = %q", got)
	}
	if !strings.Contains(Full(), "commit:") {
		t.Errorf("Full() = %q", Full())
	}
}
