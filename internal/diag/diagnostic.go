package diag

import (
	"routescan/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single non-fatal finding. Values are never mutated once
// they reach a Bag.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
