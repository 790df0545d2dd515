package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgePackage struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ProductId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Version     int            `gorm:"not null"`
	Status      string         `gorm:"type:varchar(16);not null;index"`
	PublishedAt *time.Time
	ArchivedAt  *time.Time
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (KnowledgePackage) TableName() string {
	return "knowledge_packages"
}
