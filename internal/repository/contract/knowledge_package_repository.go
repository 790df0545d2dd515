package contract

import (
	"context"

	"product-support-be/internal/entity"
	"product-support-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgePackageRepository interface {
	Create(ctx context.Context, pkg *entity.KnowledgePackage) error
	Update(ctx context.Context, pkg *entity.KnowledgePackage) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgePackage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgePackage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MaxVersion returns the highest version ever created for a product,
	// including archived packages. Returns 0 when none exist.
	MaxVersion(ctx context.Context, productId uuid.UUID) (int, error)
}
