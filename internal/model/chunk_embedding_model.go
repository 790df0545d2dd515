package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// ChunkEmbedding lives in its own table so the chunk rows stay usable on
// databases without the pgvector extension.
type ChunkEmbedding struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ChunkId   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Values    pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

func (ChunkEmbedding) TableName() string {
	return "chunk_embeddings"
}
