package mapper

import (
	"time"

	"product-support-be/internal/entity"
	"product-support-be/internal/model"
)

type KnowledgePackageMapper struct{}

func NewKnowledgePackageMapper() *KnowledgePackageMapper {
	return &KnowledgePackageMapper{}
}

func (m *KnowledgePackageMapper) ToEntity(p *model.KnowledgePackage) *entity.KnowledgePackage {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgePackage{
		Id:          p.Id,
		ProductId:   p.ProductId,
		Version:     p.Version,
		Status:      p.Status,
		PublishedAt: p.PublishedAt,
		ArchivedAt:  p.ArchivedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *KnowledgePackageMapper) ToModel(p *entity.KnowledgePackage) *model.KnowledgePackage {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.KnowledgePackage{
		Id:          p.Id,
		ProductId:   p.ProductId,
		Version:     p.Version,
		Status:      p.Status,
		PublishedAt: p.PublishedAt,
		ArchivedAt:  p.ArchivedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *KnowledgePackageMapper) ToEntities(packages []*model.KnowledgePackage) []*entity.KnowledgePackage {
	entities := make([]*entity.KnowledgePackage, len(packages))
	for i, p := range packages {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
