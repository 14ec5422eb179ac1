package keyword

// EntityKind is exported for testing
var EntityKind = entityKind

// IsExtendedStopWord is exported for testing
func IsExtendedStopWord(w string) bool {
	_, ok := extendedStopWords[w]
	return ok
}

// IsShortStopWord is exported for testing
func IsShortStopWord(w string) bool {
	_, ok := shortStopWords[w]
	return ok
}

// ProseModel returns the shared model of a prose tagger, nil until first use
func ProseModel(t Tagger) any {
	p := t.(*proseTagger)
	if p.model == nil {
		return nil
	}
	return p.model
}
