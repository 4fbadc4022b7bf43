// Package annot locates annotation invocations and extracts their raw argument
// lists.
//
// Sites come from two places. Active sites are parsed from the code token
// stream, where comments and literals are already trivia or single tokens.
// Inactive sites are recovered by re-lexing comment regions; they are kept for
// the debug views and never feed route composition.
//
// Argument lists may span lines and nest parentheses, braces and annotations.
// Commas split arguments only at depth zero. Unbalanced delimiters make the
// site malformed: a StructuralParseError is reported at the opening '(' and
// the site is inactive.
package annot
