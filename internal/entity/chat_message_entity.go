package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	Role       string
	Content    string
	Action     string
	Confidence float64
	CreatedAt  time.Time
}
