package token

import "routescan/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocBlock // /** ... */
)

var triviaNames = [...]string{
	TriviaSpace:        "space",
	TriviaNewline:      "newline",
	TriviaLineComment:  "line_comment",
	TriviaBlockComment: "block_comment",
	TriviaDocBlock:     "doc_block",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "unknown"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is any kind of comment.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment || t.Kind == TriviaDocBlock
}
