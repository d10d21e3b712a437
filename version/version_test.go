package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuild(t *testing.T, version, commit, buildTime string, bi *debug.BuildInfo) {
	t.Helper()
	origVersion, origCommit, origBuildTime, origRead := Version, GitCommit, BuildTime, readBuildInfo
	t.Cleanup(func() {
		Version, GitCommit, BuildTime, readBuildInfo = origVersion, origCommit, origBuildTime, origRead
	})
	Version, GitCommit, BuildTime = version, commit, buildTime
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestGetDefaults(t *testing.T) {
	stubBuild(t, "dev", "", "", nil)

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease() {
		t.Error("dev should not be a release")
	}
	if !info.BuildDate.IsZero() {
		t.Error("BuildDate should be zero without build metadata")
	}
	if info.String() != "dev" {
		t.Errorf("String() = %q, want 'dev'", info.String())
	}
}

func TestGetWithLinkerValues(t *testing.T) {
	stubBuild(t, "1.0.0", "abc1234", "2024-01-15T10:30:00Z", &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "ffffffffffffffff"},
			{Key: "vcs.time", Value: "2020-01-01T00:00:00Z"},
		},
	})

	info := Get()
	if info.GitCommit != "abc1234" {
		t.Errorf("linker commit should win, got %q", info.GitCommit)
	}
	if info.BuildDate.Year() != 2024 {
		t.Errorf("linker build time should win, got %v", info.BuildDate)
	}
	if info.GoVersion != "go1.26.0" {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}
	if !info.IsRelease() {
		t.Error("1.0.0 should be a release")
	}
	if got := info.String(); got != "1.0.0-abc1234 (built 2024-01-15T10:30:00Z)" {
		t.Errorf("String() = %q", got)
	}
}

func TestGetFromVCSSettings(t *testing.T) {
	stubBuild(t, "1.1.0", "", "", &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2025-03-01T08:00:00Z"},
		},
	})

	info := Get()
	if info.GitCommit != "0123456" {
		t.Errorf("commit should be shortened, got %q", info.GitCommit)
	}
	if !info.IsDirty || info.IsRelease() {
		t.Error("modified tree should be dirty and not a release")
	}
	if info.Short() != "1.1.0-0123456-dirty" {
		t.Errorf("Short() = %q", info.Short())
	}
	if info.BuildDate.Year() != 2025 {
		t.Errorf("BuildDate = %v", info.BuildDate)
	}
}

func TestDirtyVersionString(t *testing.T) {
	stubBuild(t, "1.0.0-dirty", "", "", nil)
	if Get().IsRelease() {
		t.Error("dirty version should not be a release")
	}
}

func TestFields(t *testing.T) {
	stubBuild(t, "2.0.0", "beef123", "", nil)
	f := Get().Fields()
	if f["version"] != "2.0.0" || f["git_commit"] != "beef123" {
		t.Errorf("unexpected fields %v", f)
	}
}

func TestUserAgent(t *testing.T) {
	stubBuild(t, "3.1.4", "", "", nil)
	if ua := UserAgent("taskflow"); ua != "taskflow/3.1.4" {
		t.Errorf("UserAgent() = %q", ua)
	}
	if !strings.HasPrefix(UserAgent("x"), "x/") {
		t.Error("product prefix missing")
	}
}
