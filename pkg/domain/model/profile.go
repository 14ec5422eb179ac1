package model

import "strings"

// UserProfile is the expertise description of one request
type UserProfile struct {
	Topics   []string
	FreeText string
	Keywords []string
}

// NewUserProfile trims topics and drops blank ones, preserving order
func NewUserProfile(topics []string, freeText string) *UserProfile {
	cleaned := make([]string, 0, len(topics))
	for _, topic := range topics {
		if t := strings.TrimSpace(topic); t != "" {
			cleaned = append(cleaned, t)
		}
	}

	return &UserProfile{
		Topics:   cleaned,
		FreeText: strings.TrimSpace(freeText),
	}
}

// IsEmpty reports whether the profile has neither topics nor free text
func (p *UserProfile) IsEmpty() bool {
	return len(p.Topics) == 0 && p.FreeText == ""
}

// ProfileText renders the text embedded as the user's expertise vector.
// Empty sections are omitted.
func (p *UserProfile) ProfileText() string {
	var sections []string
	if len(p.Topics) > 0 {
		sections = append(sections, "Topics: "+strings.Join(p.Topics, ", "))
	}
	if p.FreeText != "" {
		sections = append(sections, "Expertise description: "+p.FreeText)
	}
	return strings.Join(sections, "\n\n")
}

// RerankQuery is the query sent to the reranker: topics joined by comma, then the free text
func (p *UserProfile) RerankQuery() string {
	query := strings.Join(p.Topics, ", ")
	switch {
	case p.FreeText == "":
		return query
	case query == "":
		return p.FreeText
	default:
		return query + " " + p.FreeText
	}
}
