package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatCitation struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	MessageId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChunkId       uuid.UUID      `gorm:"type:uuid;not null"`
	DocumentId    uuid.UUID      `gorm:"type:uuid;not null"`
	DocumentTitle string         `gorm:"type:varchar(255)"`
	PageStart     int            `gorm:"default:1"`
	PageEnd       int            `gorm:"default:1"`
	SectionPath   string         `gorm:"type:varchar(512)"`
	Score         float64        `gorm:"default:0"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (ChatCitation) TableName() string {
	return "chat_citations"
}
