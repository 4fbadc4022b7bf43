package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"routescan/internal/diag"
	"routescan/internal/extract"
	"routescan/internal/route"
	"routescan/internal/source"
)

// DiskCache keeps unit payloads under <dir>/units/<key>.mp.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// UnitPayload is the cached form of an extract.Result. Annotation sites are
// not cached; spans keep offsets only and are rebound to the live file.
type UnitPayload struct {
	Schema      uint16
	Unit        string
	Endpoints   []route.Endpoint
	Diagnostics []diag.Diagnostic
	Types       int
}

// DefaultCacheDir is $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func DefaultCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDiskCache creates dir if needed.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key string) string {
	return filepath.Join(c.dir, "units", key[:2], key+".mp")
}

// Put writes the payload through a temp file and an atomic rename.
func (c *DiskCache) Put(key string, payload *UnitPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; a missing entry or an old schema is a miss.
func (c *DiskCache) Get(key string) (*UnitPayload, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var payload UnitPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// DropAll removes every cached unit.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "units"))
}

func payloadOf(res extract.Result) *UnitPayload {
	return &UnitPayload{
		Schema:      cacheSchemaVersion,
		Unit:        res.Unit,
		Endpoints:   res.Endpoints,
		Diagnostics: res.Diagnostics,
		Types:       res.Types,
	}
}

// result rebinds payload spans to file.
func (p *UnitPayload) result(file source.FileID) extract.Result {
	diags := make([]diag.Diagnostic, len(p.Diagnostics))
	for i, d := range p.Diagnostics {
		d.Primary.File = file
		if len(d.Notes) > 0 {
			notes := make([]diag.Note, len(d.Notes))
			for j, n := range d.Notes {
				n.Span.File = file
				notes[j] = n
			}
			d.Notes = notes
		}
		diags[i] = d
	}
	return extract.Result{
		Unit:        p.Unit,
		Endpoints:   p.Endpoints,
		Diagnostics: diags,
		Types:       p.Types,
	}
}
