package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Escalation struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	MessageId    uuid.UUID      `gorm:"type:uuid;not null"`
	Severity     string         `gorm:"type:varchar(16);not null"`
	TriggerTypes datatypes.JSON `gorm:"type:jsonb"`
	Reason       string         `gorm:"type:text"`
	Status       string         `gorm:"type:varchar(16);not null;index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	ResolvedAt   *time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Escalation) TableName() string {
	return "escalations"
}
