package mapper

import (
	"time"

	"product-support-be/internal/entity"
	"product-support-be/internal/model"
)

type ChatSessionMapper struct{}

func NewChatSessionMapper() *ChatSessionMapper {
	return &ChatSessionMapper{}
}

func (m *ChatSessionMapper) ToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:             s.Id,
		ProductId:      s.ProductId,
		PackageId:      s.PackageId,
		PackageVersion: s.PackageVersion,
		CustomerRef:    s.CustomerRef,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ChatSessionMapper) ToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:             s.Id,
		ProductId:      s.ProductId,
		PackageId:      s.PackageId,
		PackageVersion: s.PackageVersion,
		CustomerRef:    s.CustomerRef,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		Role:       msg.Role,
		Content:    msg.Content,
		Action:     msg.Action,
		Confidence: msg.Confidence,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:         msg.Id,
		SessionId:  msg.SessionId,
		Role:       msg.Role,
		Content:    msg.Content,
		Action:     msg.Action,
		Confidence: msg.Confidence,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

type ChatCitationMapper struct{}

func NewChatCitationMapper() *ChatCitationMapper {
	return &ChatCitationMapper{}
}

func (m *ChatCitationMapper) ToEntity(c *model.ChatCitation) *entity.ChatCitation {
	if c == nil {
		return nil
	}
	return &entity.ChatCitation{
		Id:            c.Id,
		MessageId:     c.MessageId,
		ChunkId:       c.ChunkId,
		DocumentId:    c.DocumentId,
		DocumentTitle: c.DocumentTitle,
		PageStart:     c.PageStart,
		PageEnd:       c.PageEnd,
		SectionPath:   c.SectionPath,
		Score:         c.Score,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatCitationMapper) ToModel(c *entity.ChatCitation) *model.ChatCitation {
	if c == nil {
		return nil
	}
	return &model.ChatCitation{
		Id:            c.Id,
		MessageId:     c.MessageId,
		ChunkId:       c.ChunkId,
		DocumentId:    c.DocumentId,
		DocumentTitle: c.DocumentTitle,
		PageStart:     c.PageStart,
		PageEnd:       c.PageEnd,
		SectionPath:   c.SectionPath,
		Score:         c.Score,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatCitationMapper) ToEntities(citations []*model.ChatCitation) []*entity.ChatCitation {
	entities := make([]*entity.ChatCitation, len(citations))
	for i, c := range citations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChatCitationMapper) ToModels(citations []*entity.ChatCitation) []*model.ChatCitation {
	models := make([]*model.ChatCitation, len(citations))
	for i, c := range citations {
		models[i] = m.ToModel(c)
	}
	return models
}
