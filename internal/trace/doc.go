// Package trace records what the batch driver is doing while it scans a tree.
//
// Tracing is off by default and enabled from the command line:
//
//	routescan scan --trace=- --trace-level=detail ./src
//
// # Levels
//
//   - off: nothing is emitted
//   - error: reserved for failure reports
//   - phase: the driver span and batch passes (discover, descriptor, scan, report)
//   - detail: adds one span per source unit
//   - debug: adds per-unit steps such as cache lookups
//
// # Propagation
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "scan", parent)
//	defer span.End("")
//
// The extractor itself never traces; only the driver does.
package trace
