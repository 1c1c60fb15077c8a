package diag

import (
	"fmt"
	"slices"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Guard analysis
	GuardIncomplete       Code = 1001
	GuardUnreachable      Code = 1002
	GuardBaseNotLast      Code = 1004
	GuardMultipleBase     Code = 1005
	GuardOverloadCount    Code = 1101
	GuardUnknownExplosion Code = 1102

	// Лексические
	LexUnknownChar         Code = 3001
	LexBadNumber           Code = 3002
	LexUnterminatedString  Code = 3003
	LexUnterminatedComment Code = 3004

	// Парсерные
	SynUnexpectedToken    Code = 4001
	SynExpectIdentifier   Code = 4002
	SynExpectExpression   Code = 4003
	SynUnclosedParen      Code = 4004
	SynUnclosedBrace      Code = 4005
	SynExpectBody         Code = 4006
	SynUnexpectedTopLevel Code = 4007

	// IO
	IOLoadFileError Code = 5001
	IOCacheError    Code = 5002
)

type codeInfo struct {
	name  string
	title string
	level Severity
}

var codeTable = map[Code]codeInfo{
	UnknownCode:            {"UNKNOWN", "Unknown error", SevError},
	GuardIncomplete:        {"GUARD_INCOMPLETE", "Guard clauses are not exhaustive", SevError},
	GuardUnreachable:       {"GUARD_UNREACHABLE", "Overload can never be selected", SevWarning},
	GuardBaseNotLast:       {"GUARD_BASE_NOT_LAST", "Base overload must be declared last", SevError},
	GuardMultipleBase:      {"GUARD_MULTIPLE_BASE", "More than one base overload", SevError},
	GuardOverloadCount:     {"GUARD_OVERLOAD_COUNT", "Too many overloads in one group", SevWarning},
	GuardUnknownExplosion:  {"GUARD_UNKNOWN_EXPLOSION", "Most guards cannot be analyzed", SevWarning},
	LexUnknownChar:         {"LEX_UNKNOWN_CHAR", "Unknown character", SevError},
	LexBadNumber:           {"LEX_BAD_NUMBER", "Malformed number literal", SevError},
	LexUnterminatedString:  {"LEX_UNTERMINATED_STRING", "Unterminated string literal", SevError},
	LexUnterminatedComment: {"LEX_UNTERMINATED_COMMENT", "Unterminated block comment", SevError},
	SynUnexpectedToken:     {"SYN_UNEXPECTED_TOKEN", "Unexpected token", SevError},
	SynExpectIdentifier:    {"SYN_EXPECT_IDENTIFIER", "Expected identifier", SevError},
	SynExpectExpression:    {"SYN_EXPECT_EXPRESSION", "Expected expression", SevError},
	SynUnclosedParen:       {"SYN_UNCLOSED_PAREN", "Unclosed parenthesis", SevError},
	SynUnclosedBrace:       {"SYN_UNCLOSED_BRACE", "Unclosed brace", SevError},
	SynExpectBody:          {"SYN_EXPECT_BODY", "Expected function body or ';'", SevError},
	SynUnexpectedTopLevel:  {"SYN_UNEXPECTED_TOP_LEVEL", "Unexpected top-level construct", SevError},
	IOLoadFileError:        {"IO_LOAD_FILE", "Failed to load file", SevError},
	IOCacheError:           {"IO_CACHE", "Disk cache failure", SevWarning},
}

// ID returns the stable short identifier, e.g. "E1001" or "SYN4001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		if c.DefaultSeverity() == SevError {
			return fmt.Sprintf("E%04d", ic)
		}
		return fmt.Sprintf("W%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Name returns the symbolic name, e.g. "GUARD_UNREACHABLE".
func (c Code) Name() string {
	return c.info().name
}

func (c Code) Title() string {
	return c.info().title
}

// DefaultSeverity is the level a primary diagnostic of this code carries.
func (c Code) DefaultSeverity() Severity {
	return c.info().level
}

func (c Code) info() codeInfo {
	info, ok := codeTable[c]
	if !ok {
		return codeTable[UnknownCode]
	}
	return info
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Codes returns every known code except UnknownCode, in numeric order.
func Codes() []Code {
	out := make([]Code, 0, len(codeTable))
	for c := range codeTable {
		if c != UnknownCode {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}
