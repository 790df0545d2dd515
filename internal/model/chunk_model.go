package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chunk struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	DocumentId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content         string         `gorm:"type:text;not null"`
	PageStart       int            `gorm:"default:1"`
	PageEnd         int            `gorm:"default:1"`
	SectionPath     string         `gorm:"type:varchar(512)"`
	ContentType     string         `gorm:"type:varchar(32);not null;index"`
	TokenCount      int            `gorm:"not null"`
	OrderInDocument int            `gorm:"not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Chunk) TableName() string {
	return "chunks"
}
