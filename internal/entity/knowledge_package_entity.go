package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgePackage is a versioned set of documents for one product. At most
// one package per product is ACTIVE at a time.
type KnowledgePackage struct {
	Id          uuid.UUID
	ProductId   uuid.UUID
	Version     int
	Status      string
	PublishedAt *time.Time
	ArchivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
