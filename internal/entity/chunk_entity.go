package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is the retrieval unit: a bounded span of one document with enough
// location metadata to cite it back to the source.
type Chunk struct {
	Id              uuid.UUID
	DocumentId      uuid.UUID
	Content         string
	PageStart       int
	PageEnd         int
	SectionPath     string
	ContentType     string
	TokenCount      int
	OrderInDocument int
	CreatedAt       time.Time
}

// ChunkEmbedding is kept separate from Chunk so keyword retrieval works
// without the vector column being populated.
type ChunkEmbedding struct {
	Id        uuid.UUID
	ChunkId   uuid.UUID
	Values    []float32
	CreatedAt time.Time
}
