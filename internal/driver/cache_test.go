package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"routescan/internal/diag"
	"routescan/internal/extract"
	"routescan/internal/route"
	"routescan/internal/source"
)

func sampleResult(file source.FileID) extract.Result {
	return extract.Result{
		Unit: "com.example.UserController",
		Endpoints: []route.Endpoint{
			{HTTPMethod: "GET", PathTemplate: "/users", DeclaringType: "com.example.UserController", HandlerName: "list", Origin: route.OriginAnnotation},
			{HTTPMethod: "POST", PathTemplate: "/legacy", DeclaringType: "com.example.LegacyServlet", HandlerName: "doPost", Origin: route.OriginDescriptor},
		},
		Diagnostics: []diag.Diagnostic{{
			Severity: diag.SevWarning,
			Code:     diag.ResUnresolvedConst,
			Message:  "unresolved constant BASE",
			Primary:  source.Span{File: file, Start: 10, End: 14},
			Notes:    []diag.Note{{Span: source.Span{File: file, Start: 0, End: 4}, Msg: "declared here"}},
		}},
		Types: 2,
	}
}

func TestDiskCacheRoundTripRebindsSpans(t *testing.T) {
	disk, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := "ab" + "0123456789"
	if err := disk.Put(key, payloadOf(sampleResult(3))); err != nil {
		t.Fatalf("Put: %v", err)
	}

	p, ok, err := disk.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	res := p.result(7)
	if len(res.Endpoints) != 2 || res.Endpoints[1].Origin != route.OriginDescriptor {
		t.Fatalf("endpoints not preserved: %v", res.Endpoints)
	}
	d := res.Diagnostics[0]
	if d.Primary.File != 7 || d.Primary.Start != 10 || d.Notes[0].Span.File != 7 {
		t.Errorf("spans not rebound: %+v", d)
	}
	if d.Code != diag.ResUnresolvedConst || d.Severity != diag.SevWarning {
		t.Errorf("diagnostic identity lost: %+v", d)
	}
	if res.Types != 2 || res.Unit != "com.example.UserController" {
		t.Errorf("unexpected result header %+v", res)
	}
	if p.Diagnostics[0].Primary.File != 3 {
		t.Error("rebinding must not mutate the cached payload")
	}
}

func TestDiskCacheMisses(t *testing.T) {
	disk, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	if _, ok, err := disk.Get("ffmissing"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	stale := payloadOf(sampleResult(0))
	stale.Schema = cacheSchemaVersion + 1
	if err := disk.Put("aastale", stale); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, err := disk.Get("aastale"); ok || err != nil {
		t.Errorf("old schema must be a miss, got ok=%v err=%v", ok, err)
	}

	if err := os.MkdirAll(filepath.Dir(disk.pathFor("cccorrupt")), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(disk.pathFor("cccorrupt"), []byte{0xc1}, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := disk.Get("cccorrupt"); err == nil {
		t.Error("expected error for corrupt entry")
	}

	if err := disk.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, err := os.Stat(filepath.Join(disk.Dir(), "units")); !os.IsNotExist(err) {
		t.Errorf("expected units dir removed, got %v", err)
	}
}

func TestPayloadEncoding(t *testing.T) {
	data, err := msgpack.Marshal(payloadOf(sampleResult(1)))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var p UnitPayload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.Schema != cacheSchemaVersion || p.Endpoints[0].PathTemplate != "/users" {
		t.Errorf("unexpected payload %+v", p)
	}
}

func TestCachePromotesDiskHits(t *testing.T) {
	disk, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	writer, err := NewCache(4, disk)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if err := writer.Put("dd01", sampleResult(0)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	reader, err := NewCache(4, disk)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if reader.Len() != 0 {
		t.Fatalf("fresh cache must start empty")
	}
	res, ok, err := reader.Get("dd01", 5)
	if err != nil || !ok {
		t.Fatalf("expected disk hit, ok=%v err=%v", ok, err)
	}
	if res.Diagnostics[0].Primary.File != 5 {
		t.Errorf("expected span rebound to file 5")
	}
	if reader.Len() != 1 {
		t.Errorf("expected promoted entry, len=%d", reader.Len())
	}
}

func TestCacheMemoryOnlyEvicts(t *testing.T) {
	c, err := NewCache(1, nil)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	_ = c.Put("ee01", sampleResult(0))
	_ = c.Put("ee02", sampleResult(0))
	if _, ok, _ := c.Get("ee01", 0); ok {
		t.Error("expected ee01 evicted")
	}
	if _, ok, _ := c.Get("ee02", 0); !ok {
		t.Error("expected ee02 present")
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	if err := c.Put("ff01", sampleResult(0)); err != nil {
		t.Fatalf("Put on nil cache: %v", err)
	}
	if _, ok, err := c.Get("ff01", 0); ok || err != nil {
		t.Fatalf("nil cache must miss silently")
	}
	if c.Len() != 0 {
		t.Fatal("nil cache has no entries")
	}
}

func TestUnitKey(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.Get(fs.AddVirtual("A.java", []byte("class A {}")))
	b := fs.Get(fs.AddVirtual("B.java", []byte("class B {}")))

	base := UnitKey(a, "com.example.A", "d1")
	if base != UnitKey(a, "com.example.A", "d1") {
		t.Fatal("key must be stable")
	}
	for name, other := range map[string]string{
		"content":    UnitKey(b, "com.example.A", "d1"),
		"unit name":  UnitKey(a, "com.example.B", "d1"),
		"descriptor": UnitKey(a, "com.example.A", "d2"),
	} {
		if other == base {
			t.Errorf("changing %s must change the key", name)
		}
	}
	if len(base) != 64 {
		t.Errorf("expected hex sha256, got %q", base)
	}
}
