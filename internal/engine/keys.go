package engine

import "strings"

// The three sources identify the same advertisement inconsistently: the
// spend export by (ad set name, ad name), attribution and funnel exports by
// (UTM term, UTM content), and any of the four labels may be missing or
// reordered. Matching therefore probes a ranked set of candidate keys, most
// specific first, and falls back to substring containment only when every
// exact probe misses. Ties resolve to the first match in table insertion
// order.

var summaryLabels = map[string]struct{}{
	"total": {},
	"sum":   {},
	"grand": {},
}

// NormalizeLabel canonicalizes one source label for keying.
func NormalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsSummaryLabel reports whether a label names a spreadsheet summary row
// rather than an advertisement.
func IsSummaryLabel(s string) bool {
	_, ok := summaryLabels[NormalizeLabel(s)]
	return ok
}

// CandidateKeys returns the probe keys for a label pair in specificity
// order: ordered pair, reversed pair, then each label alone. Empty labels
// and duplicates are dropped.
func CandidateKeys(a, b string) []string {
	a, b = NormalizeLabel(a), NormalizeLabel(b)
	keys := make([]string, 0, 4)
	add := func(k string) {
		if k == "" {
			return
		}
		for _, have := range keys {
			if have == k {
				return
			}
		}
		keys = append(keys, k)
	}
	if a != "" && b != "" {
		add(a + "|" + b)
		add(b + "|" + a)
	}
	add(a)
	add(b)
	return keys
}

type indexEntry[T any] struct {
	term    string
	content string
	rec     T
}

// Index holds one auxiliary source table keyed for fuzzy lookup. Entries are
// kept in insertion order; the exact map records only the first writer of
// each candidate key.
type Index[T any] struct {
	exact   map[string]int
	entries []indexEntry[T]
}

func NewIndex[T any]() *Index[T] {
	return &Index[T]{exact: make(map[string]int)}
}

// Add registers a record under every candidate key of its label pair.
// Summary rows are refused: they are aggregates, not ads.
func (ix *Index[T]) Add(term, content string, rec T) {
	if IsSummaryLabel(term) || IsSummaryLabel(content) {
		return
	}
	pos := len(ix.entries)
	ix.entries = append(ix.entries, indexEntry[T]{term: NormalizeLabel(term), content: NormalizeLabel(content), rec: rec})
	for _, k := range CandidateKeys(term, content) {
		if _, taken := ix.exact[k]; !taken {
			ix.exact[k] = pos
		}
	}
}

// Len reports the number of indexed records.
func (ix *Index[T]) Len() int { return len(ix.entries) }

// Lookup probes the index with the candidate keys of (a, b), most specific
// first. When every exact probe misses, it scans entries in insertion order
// for substring containment in either direction against the individual
// labels. Returns the zero record and false on no match.
func (ix *Index[T]) Lookup(a, b string) (T, bool) {
	for _, k := range CandidateKeys(a, b) {
		if pos, ok := ix.exact[k]; ok {
			return ix.entries[pos].rec, true
		}
	}
	for _, probe := range []string{NormalizeLabel(a), NormalizeLabel(b)} {
		if probe == "" {
			continue
		}
		for _, e := range ix.entries {
			if containsEither(e.term, probe) || containsEither(e.content, probe) {
				return e.rec, true
			}
		}
	}
	var zero T
	return zero, false
}

func containsEither(label, probe string) bool {
	if label == "" {
		return false
	}
	return strings.Contains(label, probe) || strings.Contains(probe, label)
}
