package model

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxMissingInfo caps the suggestions attached to one article
	MaxMissingInfo = 5

	shortExtractLength = 500
)

var missingInfoChecklist = []struct {
	keyword    string
	suggestion string
}{
	{"history", "Add historical background or development"},
	{"usage", "Describe common applications or usage"},
	{"examples", "Provide specific examples or case studies"},
	{"reference", "Add references and citations"},
	{"image", "Include relevant images or diagrams"},
}

// SuggestMissingInfo lists up to MaxMissingInfo things the article lacks,
// judged by keyword presence in its extract and by the search topic it was found under.
func SuggestMissingInfo(detail *ArticleDetail, topic string) []string {
	suggestions := make([]string, 0, MaxMissingInfo)
	add := func(s string) bool {
		if len(suggestions) >= MaxMissingInfo {
			return false
		}
		suggestions = append(suggestions, s)
		return true
	}

	extract := strings.ToLower(detail.Extract)

	if utf8.RuneCountInString(detail.Extract) < shortExtractLength {
		add("Expand the basic description with more details")
	}

	for _, item := range missingInfoChecklist {
		if strings.Contains(extract, item.keyword) {
			continue
		}
		if !add(item.suggestion) {
			return suggestions
		}
	}

	// topic rules match the whole topic, so "Political science" gets none
	topic = strings.ToLower(topic)
	switch {
	case topic == "science" || topic == "technology":
		if !containsAny(extract, "technical", "specification") {
			add("Add technical specifications or scientific details")
		}
	case topic == "history":
		if !containsAny(extract, "year", "century", "date") {
			add("Include important dates and time periods")
		}
	case topic == "biography" || hasPeopleCategory(detail.Categories):
		if !containsAny(extract, "born", "birth") {
			add("Add biographical information such as birth date, education")
		}
	}

	return suggestions
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func hasPeopleCategory(categories []string) bool {
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c), "people") {
			return true
		}
	}
	return false
}
