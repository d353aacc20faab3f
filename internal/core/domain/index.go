package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TitleIndex maps normalized titles to the documents carrying them.
//
// Keys keep the order in which they were first added, and each bucket keeps
// the order in which its entries were added. Both orders survive a JSON
// round-trip, so scans over the index are "first discovered wins" no matter
// how many times the payload was saved and loaded.
//
// A document id is accepted at most once per index.
//
// The zero value is not usable; create indexes with NewTitleIndex.
// A nil *TitleIndex behaves as an empty, read-only index.
type TitleIndex struct {
	keys    []string
	buckets map[string][]DocumentEntry
	ids     map[string]struct{}
}

// NewTitleIndex creates an empty index.
func NewTitleIndex() *TitleIndex {
	return &TitleIndex{
		buckets: make(map[string][]DocumentEntry),
		ids:     make(map[string]struct{}),
	}
}

// Add appends entry under NormalizeTitle(entry.Name). It reports the key
// used and whether the entry was added; an entry whose id is already in
// the index is rejected.
func (x *TitleIndex) Add(entry DocumentEntry) (string, bool) {
	key := NormalizeTitle(entry.Name)
	if _, dup := x.ids[entry.ID]; dup {
		return key, false
	}
	x.ids[entry.ID] = struct{}{}

	if _, ok := x.buckets[key]; !ok {
		x.keys = append(x.keys, key)
	}
	x.buckets[key] = append(x.buckets[key], entry)
	return key, true
}

// Bucket returns the entries stored under key, in insertion order.
func (x *TitleIndex) Bucket(key string) []DocumentEntry {
	if x == nil {
		return nil
	}
	return x.buckets[key]
}

// Has reports whether key has a bucket.
func (x *TitleIndex) Has(key string) bool {
	if x == nil {
		return false
	}
	_, ok := x.buckets[key]
	return ok
}

// HasID reports whether a document with id has been added.
func (x *TitleIndex) HasID(id string) bool {
	if x == nil {
		return false
	}
	_, ok := x.ids[id]
	return ok
}

// Keys returns a copy of the keys in insertion order.
func (x *TitleIndex) Keys() []string {
	if x == nil {
		return nil
	}
	keys := make([]string, len(x.keys))
	copy(keys, x.keys)
	return keys
}

// Len returns the number of unique normalized titles.
func (x *TitleIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.keys)
}

// EntryCount returns the number of documents across all buckets.
func (x *TitleIndex) EntryCount() int {
	if x == nil {
		return 0
	}
	return len(x.ids)
}

// Titles flattens the index into the display names of every entry,
// bucket by bucket.
func (x *TitleIndex) Titles() []string {
	titles := make([]string, 0, x.EntryCount())
	for _, key := range x.Keys() {
		for _, e := range x.buckets[key] {
			titles = append(titles, e.Name)
		}
	}
	return titles
}

// MarshalJSON encodes the index as a JSON object whose members appear in
// key insertion order.
func (x *TitleIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range x.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(x.buckets[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the index, keeping member order.
// Keys are taken as stored; a repeated key appends to its bucket.
func (x *TitleIndex) UnmarshalJSON(data []byte) error {
	fresh := NewTitleIndex()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("title index: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("title index: expected key, got %v", tok)
		}

		var bucket []DocumentEntry
		if err := dec.Decode(&bucket); err != nil {
			return fmt.Errorf("title index: bucket %q: %w", key, err)
		}

		if _, ok := fresh.buckets[key]; !ok {
			fresh.keys = append(fresh.keys, key)
			fresh.buckets[key] = []DocumentEntry{}
		}
		for _, e := range bucket {
			fresh.buckets[key] = append(fresh.buckets[key], e)
			fresh.ids[e.ID] = struct{}{}
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*x = *fresh
	return nil
}

// IndexPayload is the unit persisted by a full rebuild.
type IndexPayload struct {
	// TS is when the build finished.
	TS time.Time `json:"ts"`

	// RootID is the folder the traversal started from.
	RootID string `json:"rootId"`

	// BuildID identifies this build in logs and status output.
	BuildID string `json:"buildId,omitempty"`

	// Index is the title index produced by the build.
	Index *TitleIndex `json:"index"`
}

// BuildStats summarizes one traversal of the document store.
type BuildStats struct {
	FoldersVisited   int
	FoldersSkipped   int
	DocumentsIndexed int
	DocumentsIgnored int
	DuplicateIDs     int
	SnippetFailures  int
}

// RefreshReport is returned by a successful index rebuild.
type RefreshReport struct {
	BuildID      string
	RootID       string
	UniqueTitles int
	Snippets     bool
	Duration     time.Duration
	BuiltAt      time.Time
	Stats        BuildStats
}

// IndexStatus describes the currently persisted index.
type IndexStatus struct {
	BuildID      string
	RootID       string
	BuiltAt      time.Time
	UniqueTitles int
	Documents    int
}
