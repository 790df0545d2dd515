package mapper

import (
	"encoding/json"
	"time"

	"product-support-be/internal/entity"
	"product-support-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var captions []string
	if len(d.FigureCaptions) > 0 {
		_ = json.Unmarshal(d.FigureCaptions, &captions)
	}
	var metadata map[string]interface{}
	if len(d.Metadata) > 0 {
		_ = json.Unmarshal(d.Metadata, &metadata)
	}

	return &entity.Document{
		Id:             d.Id,
		PackageId:      d.PackageId,
		Title:          d.Title,
		DocType:        d.DocType,
		TotalPages:     d.TotalPages,
		FigureCaptions: captions,
		Metadata:       metadata,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	var captions datatypes.JSON
	if d.FigureCaptions != nil {
		if b, err := json.Marshal(d.FigureCaptions); err == nil {
			captions = b
		}
	}
	var metadata datatypes.JSON
	if d.Metadata != nil {
		if b, err := json.Marshal(d.Metadata); err == nil {
			metadata = b
		}
	}

	return &model.Document{
		Id:             d.Id,
		PackageId:      d.PackageId,
		Title:          d.Title,
		DocType:        d.DocType,
		TotalPages:     d.TotalPages,
		FigureCaptions: captions,
		Metadata:       metadata,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
