package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id             uuid.UUID
	PackageId      uuid.UUID
	Title          string
	DocType        string
	TotalPages     int
	FigureCaptions []string
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
