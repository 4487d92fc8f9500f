package catalog

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed or incomplete source row. It is fatal at
// load time: a catalog is never constructed partially.
type ParseError struct {
	Line   int
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("catalog: line %d: field %q: %s", e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("catalog: line %d: %s", e.Line, e.Reason)
}

// NotFoundError reports a lookup by name that matched no record.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("catalog: agent %q not found (did you mean %s?)",
			e.Name, strings.Join(quoteAll(e.Suggestions), ", "))
	}
	return fmt.Sprintf("catalog: agent %q not found", e.Name)
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%q", n)
	}
	return out
}
