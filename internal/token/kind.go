package token

// Kind represents the category of a Java source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (e.g. unterminated literal).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier that is not a structural keyword.
	Ident
	// Keyword represents any reserved word without a dedicated kind.
	Keyword
	KwPackage    // package
	KwImport     // import
	KwClass      // class
	KwInterface  // interface
	KwEnum       // enum
	KwExtends    // extends
	KwImplements // implements
	KwThrows     // throws
	KwNew        // new
	KwReturn     // return
	KwStatic     // static
	KwFinal      // final

	StringLit // "..."
	TextBlock // """..."""
	CharLit   // 'x'
	NumberLit // 42, 0x1F, 1.5e3, 10L

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Dot       // .
	Semicolon // ;
	Assign    // =
	Plus      // +
	Lt        // <
	Gt        // >
	At        // @
	Ellipsis  // ...
	// Operator covers every other punctuation or operator sequence.
	Operator
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	Keyword:      "Keyword",
	KwPackage:    "KwPackage",
	KwImport:     "KwImport",
	KwClass:      "KwClass",
	KwInterface:  "KwInterface",
	KwEnum:       "KwEnum",
	KwExtends:    "KwExtends",
	KwImplements: "KwImplements",
	KwThrows:     "KwThrows",
	KwNew:        "KwNew",
	KwReturn:     "KwReturn",
	KwStatic:     "KwStatic",
	KwFinal:      "KwFinal",
	StringLit:    "StringLit",
	TextBlock:    "TextBlock",
	CharLit:      "CharLit",
	NumberLit:    "NumberLit",
	LParen:       "LParen",
	RParen:       "RParen",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	Comma:        "Comma",
	Dot:          "Dot",
	Semicolon:    "Semicolon",
	Assign:       "Assign",
	Plus:         "Plus",
	Lt:           "Lt",
	Gt:           "Gt",
	At:           "At",
	Ellipsis:     "Ellipsis",
	Operator:     "Operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
