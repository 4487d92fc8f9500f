package catalog

import (
	"fmt"
	"strings"
)

// Placeholder is the literal token the source table uses for an absent value.
const Placeholder = "-"

// Column order in the source table.
const (
	colName = iota
	colPurpose
	colRepositoryURL
	colPaperTitle
	colReferenceLinks
)

// parseTable parses a pipe-delimited table into records. Row order is
// preserved. The first content row is treated as a header when it is
// followed by a markdown separator row.
func parseTable(data []byte) ([]AgentRecord, error) {
	lines := strings.Split(string(data), "\n")

	var records []AgentRecord
	seen := make(map[string]int)
	sawRow := false

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || isSeparatorRow(line) {
			continue
		}
		if !sawRow && i+1 < len(lines) && isSeparatorRow(strings.TrimSpace(lines[i+1])) {
			// header row
			continue
		}
		sawRow = true

		cells := splitRow(line)
		cell := func(idx int) string {
			if idx < len(cells) {
				return cells[idx]
			}
			return ""
		}

		name := cell(colName)
		if name == "" || name == Placeholder {
			return nil, &ParseError{Line: lineNo, Field: "name", Reason: "required field is missing"}
		}
		if first, dup := seen[name]; dup {
			return nil, &ParseError{
				Line:   lineNo,
				Field:  "name",
				Reason: fmt.Sprintf("duplicate name %q (first seen on line %d)", name, first),
			}
		}
		seen[name] = lineNo

		purpose := cell(colPurpose)
		if purpose == "" || purpose == Placeholder {
			return nil, &ParseError{Line: lineNo, Field: "purpose", Reason: "required field is missing"}
		}

		rec := AgentRecord{
			Name:    name,
			Purpose: purpose,
		}
		if repo := cell(colRepositoryURL); repo != Placeholder {
			rec.RepositoryURL = repo
		}
		if paper := cell(colPaperTitle); paper != "" && paper != Placeholder {
			rec.PaperTitle = &paper
		}
		if links := cell(colReferenceLinks); links != "" && links != Placeholder {
			rec.ReferenceLinks = strings.Fields(links)
		}

		records = append(records, rec)
	}

	return records, nil
}

// splitRow splits a table row into trimmed cells, tolerating both
// "| a | b |" and "a | b" styles.
func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// isSeparatorRow reports whether a line is a markdown alignment row
// such as "|---|:---:|".
func isSeparatorRow(line string) bool {
	if !strings.Contains(line, "-") {
		return false
	}
	for _, r := range line {
		switch r {
		case '-', ':', '|', ' ', '\t':
		default:
			return false
		}
	}
	return true
}
