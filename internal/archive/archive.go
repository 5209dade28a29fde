// Package archive persists collected facts as a single JSON document.
//
// The file on disk is the only source of truth: every operation reloads it in
// full, mutates the slice and rewrites the whole document.
package archive

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrCorrupted is returned by Load when the archive file is not valid JSON
// and the corruption policy is PolicyFail, or when it is valid JSON but not
// an array of facts.
var ErrCorrupted = errors.New("archive: corrupted file")

// Fact is a single archived fact. Text is its identity.
type Fact struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// Store is what the collector needs from an archive.
type Store interface {
	// Add inserts text unless an identical fact is already stored.
	// It reports whether the fact was written.
	Add(text, source string) (bool, error)

	// Load returns every stored fact in insertion order.
	Load() ([]Fact, error)
}

// CorruptPolicy decides what Load does with a file it cannot parse.
type CorruptPolicy string

const (
	// PolicyReset treats an unparseable file as an empty archive.
	PolicyReset CorruptPolicy = "reset"
	// PolicyFail surfaces ErrCorrupted to the caller.
	PolicyFail CorruptPolicy = "fail"
)

// Contains reports whether a fact with exactly this text is present.
func Contains(facts []Fact, text string) bool {
	for _, f := range facts {
		if f.Text == text {
			return true
		}
	}
	return false
}

// Append returns a new slice with fact added at the end. It does not check
// for duplicates.
func Append(facts []Fact, fact Fact) []Fact {
	out := make([]Fact, 0, len(facts)+1)
	out = append(out, facts...)
	return append(out, fact)
}

// Duplicates lists texts that appear more than once, in order of their
// second occurrence.
func Duplicates(facts []Fact) []string {
	seen := make(map[string]int, len(facts))
	var dups []string
	for _, f := range facts {
		seen[f.Text]++
		if seen[f.Text] == 2 {
			dups = append(dups, f.Text)
		}
	}
	return dups
}

// Marshal encodes facts the way they are stored on disk: indented with four
// spaces, non-ASCII and HTML characters left unescaped, trailing newline.
func Marshal(facts []Fact) ([]byte, error) {
	if facts == nil {
		facts = []Fact{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(facts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
