package keyword

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Frequency ranks words by raw occurrence count after stop-word removal.
// It needs no tagging, so it suits long free text used for search fan-out.
type Frequency struct{}

// NewFrequency creates a frequency-only Extractor
func NewFrequency() *Frequency {
	return &Frequency{}
}

// Extract implements Extractor
func (x *Frequency) Extract(text string, limit int) []string {
	if limit <= 0 || strings.TrimSpace(text) == "" {
		return []string{}
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(text))

	counter := newCounter()
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) < 3 {
			continue
		}
		if _, ok := shortStopWords[word]; ok {
			continue
		}
		counter.add(word, 1)
	}

	return counter.top(limit)
}

// counter accumulates weights and remembers first-seen order for tie breaking
type counter struct {
	order   []string
	weights map[string]float64
}

func newCounter() *counter {
	return &counter{weights: make(map[string]float64)}
}

func (c *counter) add(term string, weight float64) {
	if _, ok := c.weights[term]; !ok {
		c.order = append(c.order, term)
	}
	c.weights[term] += weight
}

func (c *counter) top(limit int) []string {
	terms := make([]string, len(c.order))
	copy(terms, c.order)
	sort.SliceStable(terms, func(i, j int) bool {
		return c.weights[terms[i]] > c.weights[terms[j]]
	})

	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
