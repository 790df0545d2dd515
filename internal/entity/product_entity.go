package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id        uuid.UUID
	SKU       string
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
