package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession pins the package version that was ACTIVE when the session
// started, so mid-session publishes do not change the session's sources.
type ChatSession struct {
	Id             uuid.UUID
	ProductId      uuid.UUID
	PackageId      uuid.UUID
	PackageVersion int
	CustomerRef    string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
