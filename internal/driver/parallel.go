package driver

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"routescan/internal/descriptor"
	"routescan/internal/diag"
	"routescan/internal/extract"
	"routescan/internal/observ"
	"routescan/internal/route"
	"routescan/internal/source"
	"routescan/internal/trace"
)

// Options configure a batch scan.
type Options struct {
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int
	Table          *descriptor.Table // read-only during the batch
	Cache          *Cache            // nil disables caching
	Progress       ProgressSink
	// FileSet receives the loaded sources; nil means a fresh set.
	FileSet *source.FileSet
	// KeepSites keeps annotation sites in results; cached units have none.
	KeepSites bool
}

// UnitResult is the outcome of one source file.
type UnitResult struct {
	Path    string // relative to the scan root
	FileID  source.FileID
	Result  extract.Result
	Bytes   int
	Cached  bool
	Elapsed time.Duration
}

// Batch aggregates a scan in sorted path order.
type Batch struct {
	Root      string
	FileSet   *source.FileSet
	Units     []UnitResult
	Endpoints []route.Endpoint
	Timer     *observ.Timer
	Bytes     int64
	CacheHits int

	// Descriptors lists the web.xml files the table was built from.
	Descriptors []string
	// Project holds diagnostics not tied to a unit (descriptor problems).
	Project []diag.Diagnostic
}

// Diagnostics concatenates project diagnostics, then unit diagnostics in
// unit order.
func (b *Batch) Diagnostics() []diag.Diagnostic {
	out := append([]diag.Diagnostic(nil), b.Project...)
	for _, u := range b.Units {
		out = append(out, u.Result.Diagnostics...)
	}
	return out
}

// HasErrors reports an error-severity diagnostic in any unit.
func (b *Batch) HasErrors() bool {
	for _, d := range b.Project {
		if d.Severity == diag.SevError {
			return true
		}
	}
	for _, u := range b.Units {
		if u.Result.HasErrors() {
			return true
		}
	}
	return false
}

// ScanFiles loads every path, then scans the units in parallel. Results are
// concatenated in the order of paths, regardless of completion order.
func ScanFiles(ctx context.Context, root string, paths []string, opts Options) (*Batch, error) {
	tracer := trace.FromContext(ctx)
	pass := trace.Begin(tracer, trace.ScopePass, "scan", trace.SpanFrom(ctx))
	defer pass.End("")

	batch := &Batch{
		Root:    root,
		FileSet: opts.FileSet,
		Units:   make([]UnitResult, len(paths)),
		Timer:   observ.NewTimer(),
	}
	if batch.FileSet == nil {
		batch.FileSet = source.NewFileSetWithBase(root)
	}

	loadIdx := batch.Timer.Begin("load")
	loadErrors := make(map[int]error)
	for i, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		batch.Units[i].Path = filepath.ToSlash(rel)
		emit(opts.Progress, Event{File: batch.Units[i].Path, Stage: StageLoad, Status: StatusQueued})

		id, err := batch.FileSet.Load(path)
		if err != nil {
			batch.Units[i].FileID = batch.FileSet.AddVirtual(path, nil)
			loadErrors[i] = err
			continue
		}
		batch.Units[i].FileID = id
		batch.Units[i].Bytes = len(batch.FileSet.Get(id).Content)
	}
	batch.Timer.End(loadIdx, strconv.Itoa(len(paths))+" files")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	digest := opts.Table.Digest()

	scanIdx := batch.Timer.Begin("scan")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	hits := make([]bool, len(paths))
	for i := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			u := &batch.Units[i]
			if err, failed := loadErrors[i]; failed {
				u.Result = loadFailure(u, err, opts.MaxDiagnostics)
				emit(opts.Progress, Event{File: u.Path, Stage: StageLoad, Status: StatusError, Err: err})
				return nil
			}
			file := batch.FileSet.Get(u.FileID)
			hits[i] = scanUnit(tracer, pass.ID(), file, u, digest, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	batch.Timer.End(scanIdx, fmt.Sprintf("jobs=%d", jobs))

	for i := range batch.Units {
		batch.Endpoints = append(batch.Endpoints, batch.Units[i].Result.Endpoints...)
		batch.Bytes += int64(batch.Units[i].Bytes)
		if hits[i] {
			batch.CacheHits++
		}
	}
	pass.WithExtra("units", strconv.Itoa(len(paths))).
		WithExtra("endpoints", strconv.Itoa(len(batch.Endpoints))).
		WithExtra("cache_hits", strconv.Itoa(batch.CacheHits))
	return batch, nil
}

// scanUnit fills u from the cache or by extraction and reports a cache hit.
func scanUnit(tracer trace.Tracer, parent uint64, file *source.File, u *UnitResult, digest string, opts Options) bool {
	span := trace.Begin(tracer, trace.ScopeUnit, "unit:"+u.Path, parent)
	start := time.Now()
	unit := source.NewUnit(UnitName(u.Path), file)
	key := UnitKey(file, unit.Name, digest)

	if !opts.KeepSites {
		res, ok, err := opts.Cache.Get(key, file.ID)
		if err != nil {
			trace.Point(tracer, trace.ScopeStep, "cache", err.Error(), span.ID())
		}
		if ok {
			trace.Point(tracer, trace.ScopeStep, "cache", "hit", span.ID())
			u.Result, u.Cached = res, true
			u.Elapsed = time.Since(start)
			emit(opts.Progress, Event{File: u.Path, Stage: StageCache, Status: StatusCached,
				Elapsed: u.Elapsed, Endpoints: len(res.Endpoints)})
			span.WithExtra("cached", "true").End("")
			return true
		}
	}

	emit(opts.Progress, Event{File: u.Path, Stage: StageScan, Status: StatusWorking})
	u.Result = extract.ScanWith(unit, opts.Table, extract.Options{MaxDiagnostics: opts.MaxDiagnostics})
	if !opts.KeepSites {
		u.Result.Sites = nil
	}
	if err := opts.Cache.Put(key, u.Result); err != nil {
		u.Result.Diagnostics = append(u.Result.Diagnostics, diag.NewWarning(diag.IOCacheError,
			source.Span{File: file.ID}, "failed to write cache entry: "+err.Error()))
	}
	u.Elapsed = time.Since(start)

	status := StatusDone
	if u.Result.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: u.Path, Stage: StageScan, Status: status,
		Elapsed: u.Elapsed, Endpoints: len(u.Result.Endpoints)})
	span.WithExtra("endpoints", strconv.Itoa(len(u.Result.Endpoints))).
		WithExtra("bytes", strconv.Itoa(u.Bytes)).End("")
	return false
}

// loadFailure reports an unreadable source against its virtual placeholder.
func loadFailure(u *UnitResult, err error, maxDiagnostics int) extract.Result {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: u.FileID}, "failed to load file: "+err.Error()))
	return extract.Result{Unit: UnitName(u.Path), Diagnostics: bag.Items()}
}

// Project describes a directory scan.
type Project struct {
	Root    string
	Matcher *Matcher
	// Descriptors are explicit web.xml paths; discovered ones are appended
	// when DiscoverDescriptors is set.
	Descriptors         []string
	DiscoverDescriptors bool
}

// ScanProject discovers sources, builds the descriptor table and scans. The
// table is complete before any unit starts; opts.Table is replaced.
func ScanProject(ctx context.Context, p Project, opts Options) (*Batch, Discovered, error) {
	tracer := trace.FromContext(ctx)
	pass := trace.Begin(tracer, trace.ScopePass, "discover", trace.SpanFrom(ctx))
	found, err := Discover(p.Root, p.Matcher)
	if err != nil {
		pass.End(err.Error())
		return nil, Discovered{}, err
	}
	pass.End(fmt.Sprintf("%d sources, %d descriptors", len(found.Sources), len(found.Descriptors)))

	descriptors := p.Descriptors
	if p.DiscoverDescriptors {
		descriptors = append(descriptors[:len(descriptors):len(descriptors)], found.Descriptors...)
	}
	descriptors = uniquePaths(descriptors)
	opts.FileSet = source.NewFileSetWithBase(found.Root)
	table, problems := loadDescriptors(opts.FileSet, descriptors)
	trace.Point(tracer, trace.ScopePass, "descriptors",
		fmt.Sprintf("%d files, %d servlets", len(descriptors), table.Len()), trace.SpanFrom(ctx))
	opts.Table = table

	batch, err := ScanFiles(ctx, found.Root, found.Sources, opts)
	if err != nil {
		return nil, found, err
	}
	batch.Descriptors = descriptors
	batch.Project = problems
	return batch, found, nil
}

// loadDescriptors merges every readable descriptor into one table. A file
// that cannot be read or parsed becomes an IO5003 error and is skipped.
func loadDescriptors(fset *source.FileSet, paths []string) (*descriptor.Table, []diag.Diagnostic) {
	table := descriptor.NewTable()
	var problems []diag.Diagnostic
	for _, path := range paths {
		id, err := fset.Load(path)
		if err != nil {
			id = fset.AddVirtual(path, nil)
			problems = append(problems, diag.NewError(diag.IODescriptor, source.Span{File: id},
				"failed to read descriptor: "+err.Error()))
			continue
		}
		if err := descriptor.ParseWebXML(bytes.NewReader(fset.Get(id).Content), table); err != nil {
			problems = append(problems, diag.NewError(diag.IODescriptor, source.Span{File: id},
				"failed to parse descriptor: "+err.Error()))
		}
	}
	return table, problems
}

// uniquePaths drops repeated paths, keeping the first occurrence.
func uniquePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
