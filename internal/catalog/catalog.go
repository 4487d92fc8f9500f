// Package catalog holds an immutable, versioned index of external agent
// projects and answers read-only queries over it.
//
// A Catalog is loaded once from a pipe-delimited source table and never
// mutated afterwards, so all query methods are safe for concurrent use
// without locking.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strings"
)

// Catalog is the full immutable set of agent records, in source table order.
type Catalog struct {
	records []AgentRecord
	byName  map[string]int
	version string
}

// Load reads a source table and constructs a Catalog. The load is
// whole-or-nothing: any malformed row fails with *ParseError and no
// catalog is returned.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog source: %w", err)
	}
	return build(data)
}

// LoadFile loads a catalog from a table file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return build(data)
}

func build(data []byte) (*Catalog, error) {
	records, err := parseTable(data)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]int, len(records))
	for i, r := range records {
		byName[r.Name] = i
	}

	sum := sha256.Sum256(data)
	return &Catalog{
		records: records,
		byName:  byName,
		version: hex.EncodeToString(sum[:6]),
	}, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Version returns a fingerprint of the source table content.
func (c *Catalog) Version() string {
	return c.version
}

// Records returns a copy of all records in source table order.
func (c *Catalog) Records() []AgentRecord {
	return slices.Clone(c.records)
}

// Get returns the record with the given name. The match is exact and
// case-sensitive; a miss fails with *NotFoundError carrying near-match
// suggestions when any exist.
func (c *Catalog) Get(name string) (AgentRecord, error) {
	if i, ok := c.byName[name]; ok {
		return c.records[i], nil
	}
	return AgentRecord{}, &NotFoundError{Name: name, Suggestions: c.suggest(name)}
}

// All returns all records as a lazy, restartable sequence in source
// table order.
func (c *Catalog) All() iter.Seq[AgentRecord] {
	return func(yield func(AgentRecord) bool) {
		for _, r := range c.records {
			if !yield(r) {
				return
			}
		}
	}
}

// FilterByPurpose returns the records whose purpose contains the keyword
// (case-insensitive substring), as a lazy, restartable sequence in source
// table order. An empty keyword matches every record.
func (c *Catalog) FilterByPurpose(keyword string) iter.Seq[AgentRecord] {
	kw := strings.ToLower(keyword)
	return func(yield func(AgentRecord) bool) {
		for _, r := range c.records {
			if kw != "" && !strings.Contains(strings.ToLower(r.Purpose), kw) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// suggest finds case-insensitive near matches for a missed name.
func (c *Catalog) suggest(name string) []string {
	lower := strings.ToLower(name)
	if lower == "" {
		return nil
	}
	var out []string
	for _, r := range c.records {
		candidate := strings.ToLower(r.Name)
		if strings.Contains(candidate, lower) || strings.Contains(lower, candidate) {
			out = append(out, r.Name)
		}
	}
	return out
}
