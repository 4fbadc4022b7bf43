package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	// simulating build-time ldflags
	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	if Version != "1.2.3" || GitCommit != "abc123def456" || BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("overrides not applied: %q %q %q", Version, GitCommit, BuildDate)
	}
}

func TestColoredWithoutColor(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()
	color.NoColor = true

	tests := map[string]string{
		"0.1.0-dev":            "0.1.0-dev",
		"1.2.3":                "1.2.3",
		"1.2.3-rc.1+build.123": "1.2.3-rc.1+build.123",
		"snapshot":             "snapshot",
		"  ":                   "dev",
	}
	for in, want := range tests {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored() with Version=%q = %q, want %q", in, got, want)
		}
	}
}

func TestColoredWithColor(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()
	color.NoColor = false

	Version = "1.2.3"
	if got := Colored(); got == "1.2.3" {
		t.Error("expected escape sequences when colour is enabled")
	}
}
