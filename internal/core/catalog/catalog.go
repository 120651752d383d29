// Package catalog holds the local institution table used when the model is
// unavailable and to short-circuit validation of known names.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/saber/internal/core/model"
)

//go:embed institutions.toml
var bundled []byte

// Entry is one vetted institution as stored in the bundle or in Memgraph.
type Entry struct {
	Name         string   `toml:"name" json:"name"`
	Aliases      []string `toml:"aliases" json:"aliases"`
	Municipality string   `toml:"municipality" json:"municipality"`
	Department   string   `toml:"department" json:"department"`
	Sector       string   `toml:"sector" json:"sector"`
	Level        string   `toml:"level" json:"level"`
	DaneCode     string   `toml:"dane_code" json:"dane_code"`
}

// Key identifies an entry: the same school name may exist in several
// municipalities.
func (e Entry) Key() string {
	return Normalize(e.Name) + "|" + Normalize(e.Municipality)
}

type entryFile struct {
	Institutions []Entry `toml:"institution"`
}

type indexed struct {
	entry Entry
	keys  []string
	town  string
}

type Catalog struct {
	entries    []indexed
	minQuery   int
	limit      int
	confidence float64
}

type Option func(*Catalog)

func WithMinQueryLength(n int) Option {
	return func(c *Catalog) { c.minQuery = n }
}

func WithLimit(n int) Option {
	return func(c *Catalog) { c.limit = n }
}

// WithConfidence sets the constant confidence attached to local candidates.
func WithConfidence(v float64) Option {
	return func(c *Catalog) { c.confidence = model.ClampConfidence(v) }
}

// New builds an immutable catalogue. Entries without a name are skipped and
// later entries with the same Key as an earlier one are ignored.
func New(entries []Entry, opts ...Option) *Catalog {
	c := &Catalog{minQuery: 3, limit: 5, confidence: 0.8}
	for _, opt := range opts {
		opt(c)
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		key := e.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		ix := indexed{entry: e, town: NormalizeTown(e.Municipality)}
		ix.keys = append(ix.keys, Normalize(e.Name))
		for _, a := range e.Aliases {
			if n := Normalize(a); n != "" {
				ix.keys = append(ix.keys, n)
			}
		}
		c.entries = append(c.entries, ix)
	}
	return c
}

// Parse reads entries from a TOML document with [[institution]] tables.
func Parse(data []byte) ([]Entry, error) {
	var f entryFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse institutions: %w", err)
	}
	return f.Institutions, nil
}

// Bundled returns the catalogue compiled into the binary.
func Bundled(opts ...Option) (*Catalog, error) {
	entries, err := Parse(bundled)
	if err != nil {
		return nil, err
	}
	return New(entries, opts...), nil
}

func MustBundled(opts ...Option) *Catalog {
	c, err := Bundled(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Merge returns a new catalogue with extra appended after the current entries.
func (c *Catalog) Merge(extra []Entry) *Catalog {
	all := c.Entries()
	all = append(all, extra...)
	return New(all, WithMinQueryLength(c.minQuery), WithLimit(c.limit), WithConfidence(c.confidence))
}

// Entries returns a copy of the catalogue contents.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, ix := range c.entries {
		e := ix.entry
		e.Aliases = append([]string(nil), e.Aliases...)
		out = append(out, e)
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Search returns entries whose name or an alias contains the query, ignoring
// case and accents. Prefix matches come first, table order otherwise.
func (c *Catalog) Search(query string) []model.Candidate {
	q := Normalize(query)
	if utf8.RuneCountInString(q) < c.minQuery {
		return []model.Candidate{}
	}

	type hit struct {
		rank int
		ix   indexed
	}
	var hits []hit
	for _, ix := range c.entries {
		rank := -1
		for _, k := range ix.keys {
			if strings.HasPrefix(k, q) {
				rank = 0
				break
			}
			if rank == -1 && strings.Contains(k, q) {
				rank = 1
			}
		}
		if rank >= 0 {
			hits = append(hits, hit{rank: rank, ix: ix})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })

	out := make([]model.Candidate, 0, len(hits))
	for _, h := range hits {
		if len(out) == c.limit {
			break
		}
		out = append(out, c.candidate(h.ix.entry))
	}
	return out
}

// Lookup finds an entry whose name or alias equals name after normalization.
// A non-empty municipality must match the entry's municipality when the entry
// has one; district designations such as "D.C." are ignored.
func (c *Catalog) Lookup(name, municipality string) (model.Candidate, bool) {
	n := Normalize(name)
	if n == "" {
		return model.Candidate{}, false
	}
	town := NormalizeTown(municipality)
	for _, ix := range c.entries {
		if town != "" && ix.town != "" && ix.town != town {
			continue
		}
		for _, k := range ix.keys {
			if k == n {
				return c.candidate(ix.entry), true
			}
		}
	}
	return model.Candidate{}, false
}

func (c *Catalog) candidate(e Entry) model.Candidate {
	return model.Candidate{
		FullName:     strings.TrimSpace(e.Name),
		Municipality: strings.TrimSpace(e.Municipality),
		Department:   strings.TrimSpace(e.Department),
		Sector:       model.ParseSector(e.Sector),
		Level:        strings.TrimSpace(e.Level),
		Confidence:   c.confidence,
		DaneCode:     strings.TrimSpace(e.DaneCode),
		Source:       model.SourceLocal,
	}
}
