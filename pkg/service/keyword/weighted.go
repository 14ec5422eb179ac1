package keyword

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/secmon-lab/stubscout/pkg/utils/logging"
)

// Weighted ranks nouns, adjectives and named entities by summed kind weight.
// People weigh 2, places and organizations 1.5, everything else 1.
type Weighted struct {
	tagger   Tagger
	fallback Extractor
}

// WeightedOption is a functional option for Weighted
type WeightedOption func(*Weighted)

// WithTagger replaces the part-of-speech and entity tagger
func WithTagger(t Tagger) WeightedOption {
	return func(w *Weighted) {
		w.tagger = t
	}
}

// NewWeighted creates a tagging Extractor backed by prose by default
func NewWeighted(opts ...WeightedOption) *Weighted {
	w := &Weighted{
		tagger:   NewProseTagger(),
		fallback: NewFrequency(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Extract implements Extractor. Terms are counted group by group (nouns,
// adjectives, people, places, organizations), so equal weights rank by that
// order first. If tagging fails the frequency ranking is used.
func (w *Weighted) Extract(text string, limit int) []string {
	if limit <= 0 || strings.TrimSpace(text) == "" {
		return []string{}
	}

	terms, err := w.tagger.Tag(text)
	if err != nil {
		logging.Default().Warn("keyword tagging failed, using frequency ranking", "error", err)
		return w.fallback.Extract(text, limit)
	}

	grouped := make([]Term, len(terms))
	copy(grouped, terms)
	sort.SliceStable(grouped, func(i, j int) bool {
		return grouped[i].Kind < grouped[j].Kind
	})

	counter := newCounter()
	for _, term := range grouped {
		word := strings.ToLower(strings.TrimSpace(term.Text))
		if utf8.RuneCountInString(word) < 3 {
			continue
		}
		if _, ok := extendedStopWords[word]; ok {
			continue
		}
		counter.add(word, term.Kind.Weight())
	}

	return counter.top(limit)
}
