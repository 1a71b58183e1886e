package entity

import (
	"time"

	"github.com/google/uuid"
)

type HistoryMessageType string

const (
	HistoryMessageRequest  HistoryMessageType = "request"
	HistoryMessageResponse HistoryMessageType = "response"
	HistoryMessageImprove  HistoryMessageType = "improve"
)

// HistoryMessage is one recorded turn attached to a section. The last entry
// of a section's history is its current content.
type HistoryMessage struct {
	Content string             `json:"content"`
	Type    HistoryMessageType `json:"type"`
}

type Section struct {
	Id        uuid.UUID
	ProjectId uuid.UUID
	Name      string
	History   []HistoryMessage
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Completed reports whether the section has at least one history entry.
func (s *Section) Completed() bool {
	return len(s.History) > 0
}

// CurrentContent returns the content of the last history entry.
func (s *Section) CurrentContent() string {
	if len(s.History) == 0 {
		return ""
	}
	return s.History[len(s.History)-1].Content
}

type Project struct {
	Id      uuid.UUID
	Name    string
	Context string

	// VectorStoreId references the project's dedicated external vector index.
	VectorStoreId string

	// LastResponseId is the opaque continuation token of the last AI turn,
	// nil before the first turn. It is passed back to the generation API
	// byte-for-byte and never inspected.
	LastResponseId *string

	Sections     []*Section
	SectionOrder []uuid.UUID

	CreatedAt time.Time
	UpdatedAt *time.Time
}
