package entity

import (
	"time"

	"github.com/google/uuid"
)

type Escalation struct {
	Id           uuid.UUID
	SessionId    uuid.UUID
	MessageId    uuid.UUID
	Severity     string
	TriggerTypes []string
	Reason       string
	Status       string
	CreatedAt    time.Time
	ResolvedAt   *time.Time
}
