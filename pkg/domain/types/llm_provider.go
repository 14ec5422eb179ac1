package types

import "github.com/m-mizutani/goerr/v2"

// LLMProvider selects the backend used for embeddings and text generation
type LLMProvider string

const (
	LLMProviderOpenAI LLMProvider = "openai"
	LLMProviderGemini LLMProvider = "gemini"
)

// AllLLMProviders returns all supported providers
func AllLLMProviders() []LLMProvider {
	return []LLMProvider{
		LLMProviderOpenAI,
		LLMProviderGemini,
	}
}

// IsValid checks if the provider is supported
func (p LLMProvider) IsValid() bool {
	switch p {
	case LLMProviderOpenAI, LLMProviderGemini:
		return true
	default:
		return false
	}
}

// String returns the string representation of the provider
func (p LLMProvider) String() string {
	return string(p)
}

// ParseLLMProvider parses a string into an LLMProvider
func ParseLLMProvider(s string) (LLMProvider, error) {
	p := LLMProvider(s)
	if !p.IsValid() {
		return "", goerr.New("unsupported LLM provider", goerr.V("provider", s))
	}
	return p, nil
}
