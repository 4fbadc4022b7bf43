// Package config loads routescan.toml and the .env overlay.
//
// Precedence, highest first: command-line flags (applied by the caller),
// process environment, .env next to the manifest, routescan.toml, defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ManifestName is looked up from the scan root towards the filesystem root.
const ManifestName = "routescan.toml"

type Config struct {
	// Path is the manifest that was loaded, "" when none was found.
	Path string `toml:"-"`
	// Root is the manifest directory, or the start directory without one.
	Root string `toml:"-"`

	Scan       ScanConfig       `toml:"scan"`
	Descriptor DescriptorConfig `toml:"descriptor"`
	Cache      CacheConfig      `toml:"cache"`
	Output     OutputConfig     `toml:"output"`
}

type ScanConfig struct {
	Include        []string `toml:"include"`
	Exclude        []string `toml:"exclude"`
	Jobs           int      `toml:"jobs"`
	MaxDiagnostics int      `toml:"max-diagnostics"`
}

type DescriptorConfig struct {
	// Files are web.xml paths relative to Root.
	Files []string `toml:"files"`
	// Discover also collects every WEB-INF/web.xml under the scan root.
	Discover bool `toml:"discover"`
}

type CacheConfig struct {
	Enabled       bool   `toml:"enabled"`
	Dir           string `toml:"dir"`
	MemoryEntries int    `toml:"memory-entries"`
}

type OutputConfig struct {
	Format string `toml:"format"` // pretty|json|short
	Color  string `toml:"color"`  // auto|always|never
}

// Default is the configuration used without a manifest.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Include:        []string{"**/*.java"},
			Exclude:        []string{"**/target/**", "**/build/**", "**/.git/**"},
			MaxDiagnostics: 200,
		},
		Descriptor: DescriptorConfig{Discover: true},
		Cache:      CacheConfig{Enabled: true, MemoryEntries: 1024},
		Output:     OutputConfig{Format: "pretty", Color: "auto"},
	}
}

// Find walks up from startDir looking for routescan.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadFile decodes path over the defaults and validates it.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("scan", "include") && len(cfg.Scan.Include) == 0 {
		return Config{}, fmt.Errorf("%s: [scan].include must not be empty", path)
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Load finds and loads the manifest for startDir, then applies the .env file
// next to it and the process environment.
func Load(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if ok {
		if cfg, err = LoadFile(path); err != nil {
			return Config{}, err
		}
	} else {
		root, err := filepath.Abs(startDir)
		if err != nil {
			return Config{}, err
		}
		if info, err := os.Stat(root); err == nil && !info.IsDir() {
			root = filepath.Dir(root)
		}
		cfg.Root = root
	}

	env, err := readDotEnv(filepath.Join(cfg.Root, ".env"))
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func readDotEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return env, nil
}

// Environment keys understood by ApplyEnv.
const (
	EnvJobs     = "ROUTESCAN_JOBS"
	EnvCacheDir = "ROUTESCAN_CACHE_DIR"
	EnvNoCache  = "ROUTESCAN_NO_CACHE"
	EnvFormat   = "ROUTESCAN_FORMAT"
	EnvColor    = "ROUTESCAN_COLOR"
)

// ApplyEnv overlays environment values found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvJobs); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJobs, err)
		}
		c.Scan.Jobs = n
	}
	if v, ok := lookup(EnvCacheDir); ok && v != "" {
		c.Cache.Dir = v
	}
	if v, ok := lookup(EnvNoCache); ok && v != "" {
		off, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNoCache, err)
		}
		if off {
			c.Cache.Enabled = false
		}
	}
	if v, ok := lookup(EnvFormat); ok && v != "" {
		c.Output.Format = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvColor); ok && v != "" {
		c.Output.Color = strings.ToLower(strings.TrimSpace(v))
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Scan.Jobs < 0 {
		return fmt.Errorf("[scan].jobs must be >= 0, got %d", c.Scan.Jobs)
	}
	if c.Scan.MaxDiagnostics < 0 {
		return fmt.Errorf("[scan].max-diagnostics must be >= 0, got %d", c.Scan.MaxDiagnostics)
	}
	if c.Cache.MemoryEntries < 0 {
		return fmt.Errorf("[cache].memory-entries must be >= 0, got %d", c.Cache.MemoryEntries)
	}
	switch c.Output.Format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("[output].format: unknown format %q (expected: pretty|json|short)", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("[output].color: unknown mode %q (expected: auto|always|never)", c.Output.Color)
	}
	return nil
}

// DescriptorPaths returns the configured descriptor files as absolute paths.
func (c *Config) DescriptorPaths() []string {
	out := make([]string, 0, len(c.Descriptor.Files))
	for _, f := range c.Descriptor.Files {
		if !filepath.IsAbs(f) {
			f = filepath.Join(c.Root, filepath.FromSlash(f))
		}
		out = append(out, f)
	}
	return out
}
