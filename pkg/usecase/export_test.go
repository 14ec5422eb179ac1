package usecase

// BuildSummaryPrompt is exported for testing
var BuildSummaryPrompt = buildSummaryPrompt

// TruncateRunes is exported for testing
var TruncateRunes = truncateRunes

// Rerank cascade messages exported for testing
const (
	MsgNoArticles       = msgNoArticles
	MsgReranked         = msgReranked
	MsgEmbeddings       = msgEmbeddings
	MsgRerankFailed     = msgRerankFailed
	MsgRerankNoResults  = msgRerankNoResults
	MsgRerankUnmappable = msgRerankUnmappable
)
