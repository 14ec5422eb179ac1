package keyword

// Extractor picks representative keywords from free text
type Extractor interface {
	// Extract returns at most limit keywords, most representative first.
	// Blank text yields an empty slice.
	Extract(text string, limit int) []string
}

// TermKind classifies a tagged term. Declaration order is the counting order.
type TermKind int

const (
	TermNoun TermKind = iota
	TermAdjective
	TermPerson
	TermPlace
	TermOrganization
)

// Weight is the score one occurrence of the kind contributes
func (k TermKind) Weight() float64 {
	switch k {
	case TermPerson:
		return 2
	case TermPlace, TermOrganization:
		return 1.5
	default:
		return 1
	}
}

// Term is one tagged word or entity in document order
type Term struct {
	Text string
	Kind TermKind
}

// Tagger finds nouns, adjectives and named entities in text
type Tagger interface {
	Tag(text string) ([]Term, error)
}
