// Package report renders scan results for the CLI.
//
// Three formats share one input: pretty (aligned endpoint table, coloured
// diagnostics with a source excerpt, summary line), json (endpoints,
// diagnostics and summary in one document) and short (one line per endpoint;
// diagnostics through diag.FormatShortDiagnostics). Debug views for the lex
// and sites commands live here as well.
//
// Rendering never mutates results and never fails on a bad span: a
// diagnostic whose file cannot be resolved is printed without location.
package report
