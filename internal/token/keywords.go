package token

var keywords = map[string]Kind{
	"package":    KwPackage,
	"import":     KwImport,
	"class":      KwClass,
	"interface":  KwInterface,
	"enum":       KwEnum,
	"extends":    KwExtends,
	"implements": KwImplements,
	"throws":     KwThrows,
	"new":        KwNew,
	"return":     KwReturn,
	"static":     KwStatic,
	"final":      KwFinal,

	"abstract": Keyword, "assert": Keyword, "boolean": Keyword, "break": Keyword,
	"byte": Keyword, "case": Keyword, "catch": Keyword, "char": Keyword,
	"const": Keyword, "continue": Keyword, "default": Keyword, "do": Keyword,
	"double": Keyword, "else": Keyword, "false": Keyword, "finally": Keyword,
	"float": Keyword, "for": Keyword, "goto": Keyword, "if": Keyword,
	"instanceof": Keyword, "int": Keyword, "long": Keyword, "native": Keyword,
	"null": Keyword, "private": Keyword, "protected": Keyword, "public": Keyword,
	"short": Keyword, "strictfp": Keyword, "super": Keyword, "switch": Keyword,
	"synchronized": Keyword, "this": Keyword, "throw": Keyword, "transient": Keyword,
	"true": Keyword, "try": Keyword, "void": Keyword, "volatile": Keyword,
	"while": Keyword,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Contextual words (record, sealed, var, yield) stay identifiers.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// memberStarts are modifiers and declaration words that never continue an
// expression; one at statement level opens the next member.
var memberStarts = map[string]struct{}{
	"public": {}, "private": {}, "protected": {}, "static": {}, "final": {},
	"abstract": {}, "void": {}, "synchronized": {}, "native": {}, "transient": {},
	"volatile": {}, "strictfp": {}, "class": {}, "interface": {}, "enum": {},
}

// IsMemberStart reports whether t is a modifier or declaration keyword.
// Callers rule out qualified uses such as Foo.class themselves.
func (t Token) IsMemberStart() bool {
	if !t.IsKeyword() {
		return false
	}
	_, ok := memberStarts[t.Text]
	return ok
}
