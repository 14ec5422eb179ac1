package types

import "github.com/google/uuid"

// RunID identifies one relevance pipeline run in logs
type RunID string

// NewRunID generates a new UUID v4 RunID
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// String returns the string representation of RunID
func (id RunID) String() string {
	return string(id)
}
