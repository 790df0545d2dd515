package mapper

import (
	"product-support-be/internal/entity"
	"product-support-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.Chunk) *entity.Chunk {
	if c == nil {
		return nil
	}
	return &entity.Chunk{
		Id:              c.Id,
		DocumentId:      c.DocumentId,
		Content:         c.Content,
		PageStart:       c.PageStart,
		PageEnd:         c.PageEnd,
		SectionPath:     c.SectionPath,
		ContentType:     c.ContentType,
		TokenCount:      c.TokenCount,
		OrderInDocument: c.OrderInDocument,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *ChunkMapper) ToModel(c *entity.Chunk) *model.Chunk {
	if c == nil {
		return nil
	}
	return &model.Chunk{
		Id:              c.Id,
		DocumentId:      c.DocumentId,
		Content:         c.Content,
		PageStart:       c.PageStart,
		PageEnd:         c.PageEnd,
		SectionPath:     c.SectionPath,
		ContentType:     c.ContentType,
		TokenCount:      c.TokenCount,
		OrderInDocument: c.OrderInDocument,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *ChunkMapper) ToEntities(chunks []*model.Chunk) []*entity.Chunk {
	entities := make([]*entity.Chunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChunkMapper) ToModels(chunks []*entity.Chunk) []*model.Chunk {
	models := make([]*model.Chunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}

type ChunkEmbeddingMapper struct{}

func NewChunkEmbeddingMapper() *ChunkEmbeddingMapper {
	return &ChunkEmbeddingMapper{}
}

func (m *ChunkEmbeddingMapper) ToEntity(e *model.ChunkEmbedding) *entity.ChunkEmbedding {
	if e == nil {
		return nil
	}
	return &entity.ChunkEmbedding{
		Id:        e.Id,
		ChunkId:   e.ChunkId,
		Values:    e.Values.Slice(),
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChunkEmbeddingMapper) ToModel(e *entity.ChunkEmbedding) *model.ChunkEmbedding {
	if e == nil {
		return nil
	}
	return &model.ChunkEmbedding{
		Id:        e.Id,
		ChunkId:   e.ChunkId,
		Values:    pgvector.NewVector(e.Values),
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChunkEmbeddingMapper) ToModels(embeddings []*entity.ChunkEmbedding) []*model.ChunkEmbedding {
	models := make([]*model.ChunkEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
