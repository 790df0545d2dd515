package contract

import (
	"context"

	"product-support-be/internal/entity"

	"github.com/google/uuid"
)

type ChunkEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error
	DeleteByChunkIds(ctx context.Context, chunkIds []uuid.UUID) error
}
