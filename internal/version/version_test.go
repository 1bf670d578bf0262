package version

import (
	"runtime/debug"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name        string
		info        debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{
			name: "tagged install",
			info: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.0"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			},
			wantVersion: "v0.3.0",
			wantCommit:  "0123456",
		},
		{
			name: "dirty local build",
			info: debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc"},
					{Key: "vcs.modified", Value: "true"},
					{Key: "vcs.time", Value: "2026-03-14T09:26:53Z"},
				},
			},
			wantVersion: "dev-20260314",
			wantCommit:  "abc-dirty",
		},
		{
			name: "no vcs",
			info: debug.BuildInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldV, oldC := Version, Commit
			defer func() { Version, Commit = oldV, oldC }()
			Version, Commit = "", ""

			fromBuildInfo(&tt.info)
			if Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", Version, tt.wantVersion)
			}
			if Commit != tt.wantCommit {
				t.Errorf("Commit = %q, want %q", Commit, tt.wantCommit)
			}
		})
	}
}

func TestFull(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()
	Version, Commit = "v1.0.0", "abc1234"

	if got := Full(); got != "v1.0.0 (commit: abc1234)" {
		t.Errorf("Full() = %q", got)
	}
	if got := UserAgent(); got != "selectbox/v1.0.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}
