package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

// MatchIndex returns up to limit entries of index matching query.
//
// Matching runs in stages over the normalized query:
//
//  1. exact: every entry of the bucket whose key equals the query;
//  2. substring: entries of buckets whose key contains the query,
//     scanning keys in insertion order and stopping at the limit;
//  3. fuzzy: only when fuzzyThreshold > 0 and the first two stages found
//     nothing, entries of keys whose similarity to the query reaches the
//     threshold, best score first.
//
// An entry appears at most once. An empty query matches nothing.
func MatchIndex(index *domain.TitleIndex, query string, limit int, fuzzyThreshold float64) []domain.DocumentEntry {
	q := domain.NormalizeTitle(query)
	if q == "" || limit <= 0 || index.Len() == 0 {
		return nil
	}

	m := newMatchSet(limit)

	m.addAll(index.Bucket(q))

	for _, key := range index.Keys() {
		if m.full() {
			break
		}
		if strings.Contains(key, q) {
			m.addAll(index.Bucket(key))
		}
	}

	if len(m.results) == 0 && fuzzyThreshold > 0 {
		for _, key := range fuzzyKeys(index, q, fuzzyThreshold) {
			if m.full() {
				break
			}
			m.addAll(index.Bucket(key))
		}
	}

	return m.results
}

// fuzzyKeys returns the keys scoring at least threshold against q,
// best first. Ties keep insertion order.
func fuzzyKeys(index *domain.TitleIndex, q string, threshold float64) []string {
	type scored struct {
		key   string
		score float64
	}

	var candidates []scored
	for _, key := range index.Keys() {
		if s := domain.Similarity(key, q); s >= threshold {
			candidates = append(candidates, scored{key: key, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	keys := make([]string, len(candidates))
	for i, c := range candidates {
		keys[i] = c.key
	}
	return keys
}

// matchSet accumulates entries up to a limit, skipping repeated ids.
type matchSet struct {
	limit   int
	seen    map[string]struct{}
	results []domain.DocumentEntry
}

func newMatchSet(limit int) *matchSet {
	return &matchSet{
		limit:   limit,
		seen:    make(map[string]struct{}),
		results: make([]domain.DocumentEntry, 0, limit),
	}
}

func (m *matchSet) full() bool {
	return len(m.results) >= m.limit
}

func (m *matchSet) add(e domain.DocumentEntry) {
	if m.full() {
		return
	}
	if _, dup := m.seen[e.ID]; dup {
		return
	}
	m.seen[e.ID] = struct{}{}
	m.results = append(m.results, e)
}

func (m *matchSet) addAll(entries []domain.DocumentEntry) {
	for _, e := range entries {
		m.add(e)
	}
}

// SearchPayload answers query against payload.
//
// The raw query is searched first, then each canonical title the expander
// maps it to. Matches are merged in that order, deduplicated by id, and
// capped at opts.Limit. A nil payload yields an empty, non-nil slice.
func SearchPayload(
	payload *domain.IndexPayload, expander *QueryExpander, query string, opts domain.SearchOptions,
) []domain.DocumentEntry {
	opts = opts.WithDefaults()
	if payload == nil || payload.Index == nil {
		return []domain.DocumentEntry{}
	}

	queries := append([]string{query}, expander.Expand(query)...)

	merged := newMatchSet(opts.Limit)
	for _, q := range queries {
		if merged.full() {
			break
		}
		merged.addAll(MatchIndex(payload.Index, q, opts.PerQueryLimit, opts.FuzzyThreshold))
	}

	return merged.results
}
