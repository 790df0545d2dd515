package implementation

import (
	"context"

	"product-support-be/internal/entity"
	"product-support-be/internal/mapper"
	"product-support-be/internal/model"
	"product-support-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChunkEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkEmbeddingMapper
}

func NewChunkEmbeddingRepository(db *gorm.DB) contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkEmbeddingMapper(),
	}
}

func (r *ChunkEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

func (r *ChunkEmbeddingRepositoryImpl) DeleteByChunkIds(ctx context.Context, chunkIds []uuid.UUID) error {
	if len(chunkIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("chunk_id IN ?", chunkIds).Delete(&model.ChunkEmbedding{}).Error
}
