package keyword

func newSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

var baseStopWords = []string{
	"a", "an", "the", "and", "or", "but", "in", "on", "at", "to", "for", "with",
	"about", "is", "are", "was", "were", "be", "been", "being", "have", "has",
	"had", "having", "do", "does", "did", "doing", "i", "me", "my", "mine",
	"myself", "you", "your", "yours", "yourself", "he", "him", "his", "she",
	"her", "hers", "it", "its", "we", "us", "our", "ours", "they", "them",
	"their", "theirs", "this", "that", "these", "those", "of", "by", "from",
}

// shortStopWords filters the frequency extractor
var shortStopWords = newSet(baseStopWords...)

// extendedStopWords filters the weighted extractor
var extendedStopWords = newSet(append([]string{
	"himself", "herself", "itself", "ourselves", "themselves",
	"what", "which", "who", "whom", "whose", "when", "where", "why", "how",
	"all", "any", "both", "each", "few", "more", "most", "some", "such",
	"no", "not", "only", "same", "so", "than", "too", "very",
	"can", "will", "just", "should", "now",
}, baseStopWords...)...)
