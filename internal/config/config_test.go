package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadFindsManifestUpwards(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[scan]
include = ["src/**/*.java"]
jobs = 3

[descriptor]
files = ["src/main/webapp/WEB-INF/web.xml"]
discover = false

[output]
format = "json"
`)
	nested := filepath.Join(root, "src", "main", "java")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != root || cfg.Path != filepath.Join(root, ManifestName) {
		t.Fatalf("unexpected root %q path %q", cfg.Root, cfg.Path)
	}
	if cfg.Scan.Jobs != 3 || cfg.Output.Format != "json" || cfg.Descriptor.Discover {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Scan.Exclude, Default().Scan.Exclude) {
		t.Errorf("unset keys must keep defaults, got %v", cfg.Scan.Exclude)
	}
	want := []string{filepath.Join(root, "src", "main", "webapp", "WEB-INF", "web.xml")}
	if got := cfg.DescriptorPaths(); !reflect.DeepEqual(got, want) {
		t.Errorf("DescriptorPaths() = %v, want %v", got, want)
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" || cfg.Output.Format != "pretty" || !cfg.Cache.Enabled {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "[scan\n", "failed to parse TOML"},
		{"unknown key", "[scan]\nthreads = 2\n", "unknown keys: scan.threads"},
		{"empty include", "[scan]\ninclude = []\n", "[scan].include must not be empty"},
		{"bad format", "[output]\nformat = \"xml\"\n", "unknown format"},
		{"negative jobs", "[scan]\njobs = -1\n", "[scan].jobs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDotEnvOverlay(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".env"), "ROUTESCAN_JOBS=5\nROUTESCAN_NO_CACHE=true\nROUTESCAN_FORMAT=short\n")
	t.Setenv(EnvFormat, "json")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scan.Jobs != 5 || cfg.Cache.Enabled {
		t.Errorf(".env values not applied: %+v", cfg)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("process environment must win over .env, got %q", cfg.Output.Format)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	cfg := Default()
	lookup := func(key string) (string, bool) {
		if key == EnvJobs {
			return "many", true
		}
		return "", false
	}
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Fatal("expected error for non-numeric jobs")
	}
}
