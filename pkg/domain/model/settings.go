package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// PipelineSettings tunes the relevance pipeline fan-out
type PipelineSettings struct {
	// TopicSearchLimit is the number of search hits requested per topic
	TopicSearchLimit int
	// KeywordSearchLimit is the number of search hits requested per derived keyword
	KeywordSearchLimit int
	// KeywordCount is how many keywords are derived from free text for searching
	KeywordCount int
	// TopicCount is how many topics are derived from free text when none are given
	TopicCount int
	// ResultLimit is the default size of a result set
	ResultLimit int
	// Concurrency bounds parallel upstream calls within one run
	Concurrency int
	// StreamTimeout bounds one summary or validation stream
	StreamTimeout time.Duration
}

// DefaultPipelineSettings returns the stock pipeline tuning
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		TopicSearchLimit:   5,
		KeywordSearchLimit: 3,
		KeywordCount:       3,
		TopicCount:         5,
		ResultLimit:        10,
		Concurrency:        4,
		StreamTimeout:      120 * time.Second,
	}
}

// Validate checks that every limit is positive
func (s PipelineSettings) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"topic_search_limit", s.TopicSearchLimit},
		{"keyword_search_limit", s.KeywordSearchLimit},
		{"keyword_count", s.KeywordCount},
		{"topic_count", s.TopicCount},
		{"result_limit", s.ResultLimit},
		{"concurrency", s.Concurrency},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return goerr.New("pipeline setting must be positive", goerr.V("field", f.name), goerr.V("value", f.value))
		}
	}
	if s.StreamTimeout <= 0 {
		return goerr.New("stream timeout must be positive", goerr.V("value", s.StreamTimeout))
	}
	return nil
}
