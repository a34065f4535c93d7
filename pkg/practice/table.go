// Package practice serves translation exercises from a bundled sentence table
// and checks submitted translations.
package practice

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"
)

//go:embed texts.json
var bundledTexts []byte

// Sentence is one source/target pair.
type Sentence struct {
	French  string `json:"french"`
	English string `json:"english"`
}

// Table groups sentences by level. It is built once and only read afterwards.
type Table struct {
	levels map[string][]Sentence
}

// Bundled parses the table compiled into the binary.
func Bundled() (*Table, error) {
	return Parse(bundledTexts)
}

// Parse builds a table from JSON of the form {"level": [{"french", "english"}]}.
func Parse(data []byte) (*Table, error) {
	var levels map[string][]Sentence
	if err := json.Unmarshal(data, &levels); err != nil {
		return nil, fmt.Errorf("parse sentence table: %w", err)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("sentence table has no levels")
	}
	for level, sentences := range levels {
		if len(sentences) == 0 {
			return nil, fmt.Errorf("level %q has no sentences", level)
		}
		for i, s := range sentences {
			if s.French == "" || s.English == "" {
				return nil, fmt.Errorf("level %q sentence %d is incomplete", level, i)
			}
		}
	}
	return &Table{levels: levels}, nil
}

// Sentences returns a copy of the sentences for level.
func (t *Table) Sentences(level string) ([]Sentence, bool) {
	s, ok := t.levels[level]
	if !ok {
		return nil, false
	}
	return append([]Sentence(nil), s...), true
}

// Random picks a sentence of level uniformly. Not suitable for anything
// security sensitive.
func (t *Table) Random(level string) (Sentence, bool) {
	s, ok := t.levels[level]
	if !ok {
		return Sentence{}, false
	}
	return s[rand.Intn(len(s))], true
}
