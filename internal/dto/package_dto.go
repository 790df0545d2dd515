package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	SKU  string `json:"sku" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type CreateProductResponse struct {
	Id uuid.UUID `json:"id"`
}

type CreateDraftRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
}

type PackageResponse struct {
	Id          uuid.UUID  `json:"id"`
	ProductId   uuid.UUID  `json:"product_id"`
	Version     int        `json:"version"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PublishPackageRequest struct {
	Id uuid.UUID
}

// RollbackRequest targets a specific archived version; when Version is
// omitted the most recently archived version is re-activated.
type RollbackRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
	Version   int       `json:"version" validate:"omitempty,min=1"`
}

type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}
