package keyword

import (
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
	"github.com/m-mizutani/goerr/v2"
)

type proseTagger struct {
	once  sync.Once
	model *prose.Model
	err   error
}

// NewProseTagger creates a Tagger using prose's perceptron POS tagger and NER
// model. The models are loaded on first use and shared by later calls.
func NewProseTagger() Tagger {
	return &proseTagger{}
}

func (p *proseTagger) loadModel() (*prose.Model, error) {
	p.once.Do(func() {
		doc, err := prose.NewDocument("warm up", prose.WithSegmentation(false))
		if err != nil {
			p.err = goerr.Wrap(err, "failed to load tagging model")
			return
		}
		p.model = doc.Model
	})
	return p.model, p.err
}

// Tag implements Tagger. Tokens come first in document order, then entities.
func (p *proseTagger) Tag(text string) ([]Term, error) {
	m, err := p.loadModel()
	if err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false), prose.UsingModel(m))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to tag text")
	}

	var terms []Term
	for _, tok := range doc.Tokens() {
		switch {
		case strings.HasPrefix(tok.Tag, "NN"):
			terms = append(terms, Term{Text: tok.Text, Kind: TermNoun})
		case strings.HasPrefix(tok.Tag, "JJ"):
			terms = append(terms, Term{Text: tok.Text, Kind: TermAdjective})
		}
	}

	for _, ent := range doc.Entities() {
		if kind, ok := entityKind(ent.Label); ok {
			terms = append(terms, Term{Text: ent.Text, Kind: kind})
		}
	}

	return terms, nil
}

func entityKind(label string) (TermKind, bool) {
	switch label {
	case "PERSON":
		return TermPerson, true
	case "GPE", "LOC", "FAC":
		return TermPlace, true
	case "ORG":
		return TermOrganization, true
	default:
		return 0, false
	}
}
