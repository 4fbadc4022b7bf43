package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnterminatedBlockComment Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedChar         Code = 1003

	// Annotation scanner
	AnnInfo            Code = 2000
	AnnStructuralParse Code = 2001
	AnnUnexpectedToken Code = 2002
	AnnNestedTooDeep   Code = 2003

	// Attribute resolver
	ResInfo              Code = 3000
	ResUnknownAttribute  Code = 3001
	ResUnresolvedConst   Code = 3002
	ResEmptyPath         Code = 3003
	ResUnknownHTTPMethod Code = 3004
	ResUnsupportedValue  Code = 3005

	// Class / dispatch context
	ClsInfo              Code = 4000
	ClsUnmappedClass     Code = 4001
	ClsConflictingSource Code = 4002
	ClsNoDispatchMethods Code = 4003
	ClsUnclosedBody      Code = 4004
	ClsUnterminatedField Code = 4005

	// Batch / IO
	IOInfo          Code = 5000
	IOLoadFileError Code = 5001
	IOCacheError    Code = 5002
	IODescriptor    Code = 5003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedChar:         "Unterminated char literal",
		AnnInfo:                     "Annotation information",
		AnnStructuralParse:          "Unbalanced delimiters in annotation arguments",
		AnnUnexpectedToken:          "Unexpected token in annotation arguments",
		AnnNestedTooDeep:            "Annotation arguments nested too deeply",
		ResInfo:                     "Resolver information",
		ResUnknownAttribute:         "Unknown annotation attribute",
		ResUnresolvedConst:          "Unresolved constant in mapping value",
		ResEmptyPath:                "Empty mapping value",
		ResUnknownHTTPMethod:        "Unknown HTTP method constant",
		ResUnsupportedValue:         "Unsupported mapping value expression",
		ClsInfo:                     "Class information",
		ClsUnmappedClass:            "Servlet class has no mapping",
		ClsConflictingSource:        "Annotation and descriptor mappings differ",
		ClsNoDispatchMethods:        "Mapped servlet overrides no dispatch method",
		ClsUnclosedBody:             "Unclosed class body",
		ClsUnterminatedField:        "Field initializer not terminated",
		IOInfo:                      "I/O information",
		IOLoadFileError:             "I/O load file error",
		IOCacheError:                "Result cache error",
		IODescriptor:                "Deployment descriptor error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("ANN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CLS%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
