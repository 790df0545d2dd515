package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProductId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	PackageId      uuid.UUID      `gorm:"type:uuid;not null"`
	PackageVersion int            `gorm:"not null"`
	CustomerRef    string         `gorm:"type:varchar(128)"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
