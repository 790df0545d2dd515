package contract

import (
	"context"

	"product-support-be/internal/entity"
	"product-support-be/internal/repository/specification"
)

type ChatCitationRepository interface {
	CreateBulk(ctx context.Context, citations []*entity.ChatCitation) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatCitation, error)
}
