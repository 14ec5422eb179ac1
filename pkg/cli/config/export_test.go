package config

import "github.com/secmon-lab/stubscout/pkg/domain/types"

// NewLLMForTest creates an LLM config for testing purposes
func NewLLMForTest(provider, openaiAPIKey, summaryModel string, dimension int, geminiProject string) *LLM {
	return &LLM{
		provider:       provider,
		openaiAPIKey:   openaiAPIKey,
		summaryModel:   summaryModel,
		dimension:      dimension,
		geminiProject:  geminiProject,
		geminiLocation: "us-central1",
	}
}

// ResolvedLLM is the effective LLM configuration, exported for testing
type ResolvedLLM struct {
	Provider        types.LLMProvider
	EmbeddingModel  string
	SummaryModel    string
	ValidationModel string
	Dimension       int
}

// ResolveLLMForTest exposes LLM.resolve
func ResolveLLMForTest(l *LLM) (*ResolvedLLM, error) {
	s, err := l.resolve()
	if err != nil {
		return nil, err
	}
	return &ResolvedLLM{
		Provider:        s.provider,
		EmbeddingModel:  s.embeddingModel,
		SummaryModel:    s.summaryModel,
		ValidationModel: s.validationModel,
		Dimension:       s.dimension,
	}, nil
}

// NewRerankerForTest creates a Reranker config for testing purposes
func NewRerankerForTest(apiKey, endpoint, model string) *Reranker {
	return &Reranker{apiKey: apiKey, endpoint: endpoint, model: model}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewWikipediaForTest creates a Wikipedia config for testing purposes
func NewWikipediaForTest(endpoint, userAgent string) *Wikipedia {
	return &Wikipedia{endpoint: endpoint, userAgent: userAgent}
}

// NewAppConfigFlagForTest creates an AppConfigFlag for testing purposes
func NewAppConfigFlagForTest(path string) *AppConfigFlag {
	return &AppConfigFlag{path: path}
}
