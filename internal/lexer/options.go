package lexer

import (
	"routescan/internal/diag"
	"routescan/internal/source"
)

type Options struct {
	// Reporter может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
	Reporter diag.Reporter
	// Quiet suppresses diagnostics for a nested re-lex of comment text.
	Quiet bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil || lx.opts.Quiet {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}

func (lx *Lexer) infoLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil || lx.opts.Quiet {
		return
	}
	diag.ReportInfo(lx.opts.Reporter, code, sp, msg).Emit()
}
