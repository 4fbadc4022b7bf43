// Package diag defines the diagnostic model shared by every scanning stage.
//
// Diagnostics are findings, never failures: the lexer, the annotation scanner,
// the attribute resolver and the class context all report through a Reporter and
// keep going. A unit that produced diagnostics still yields every endpoint that
// could be determined.
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – numeric identifier with a stable string form (LEX/ANN/RES/CLS/IO).
//   - Message – short human text.
//   - Primary – the source.Span the finding points at.
//   - Notes – optional secondary spans.
//
// Bag is append-only. Sorted and Unique return new slices so the insertion order
// the scan produced stays available for deterministic output.
//
// Rendering lives in internal/report; FormatGoldenDiagnostics here is the one
// formatter kept next to the model because tests across packages rely on it.
package diag
