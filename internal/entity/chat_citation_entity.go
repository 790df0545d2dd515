package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatCitation ties one assistant message back to a source chunk.
type ChatCitation struct {
	Id            uuid.UUID
	MessageId     uuid.UUID
	ChunkId       uuid.UUID
	DocumentId    uuid.UUID
	DocumentTitle string
	PageStart     int
	PageEnd       int
	SectionPath   string
	Score         float64
	CreatedAt     time.Time
}
