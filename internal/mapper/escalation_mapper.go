package mapper

import (
	"encoding/json"

	"product-support-be/internal/entity"
	"product-support-be/internal/model"

	"gorm.io/datatypes"
)

type EscalationMapper struct{}

func NewEscalationMapper() *EscalationMapper {
	return &EscalationMapper{}
}

func (m *EscalationMapper) ToEntity(e *model.Escalation) *entity.Escalation {
	if e == nil {
		return nil
	}

	var triggerTypes []string
	if len(e.TriggerTypes) > 0 {
		_ = json.Unmarshal(e.TriggerTypes, &triggerTypes)
	}

	return &entity.Escalation{
		Id:           e.Id,
		SessionId:    e.SessionId,
		MessageId:    e.MessageId,
		Severity:     e.Severity,
		TriggerTypes: triggerTypes,
		Reason:       e.Reason,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		ResolvedAt:   e.ResolvedAt,
	}
}

func (m *EscalationMapper) ToModel(e *entity.Escalation) *model.Escalation {
	if e == nil {
		return nil
	}

	var triggerTypes datatypes.JSON
	if e.TriggerTypes != nil {
		if b, err := json.Marshal(e.TriggerTypes); err == nil {
			triggerTypes = b
		}
	}

	return &model.Escalation{
		Id:           e.Id,
		SessionId:    e.SessionId,
		MessageId:    e.MessageId,
		Severity:     e.Severity,
		TriggerTypes: triggerTypes,
		Reason:       e.Reason,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
		ResolvedAt:   e.ResolvedAt,
	}
}

func (m *EscalationMapper) ToEntities(escalations []*model.Escalation) []*entity.Escalation {
	entities := make([]*entity.Escalation, len(escalations))
	for i, e := range escalations {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
