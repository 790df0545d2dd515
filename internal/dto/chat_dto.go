package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	SKU         string `json:"sku" validate:"required"`
	CustomerRef string `json:"customer_ref"`
}

type StartSessionResponse struct {
	SessionId      uuid.UUID `json:"session_id"`
	ProductName    string    `json:"product_name"`
	PackageVersion int       `json:"package_version"`
}

type SendMessageRequest struct {
	SessionId uuid.UUID
	Message   string `json:"message" validate:"required"`
}

type CitationResponse struct {
	ChunkId       uuid.UUID `json:"chunk_id"`
	DocumentTitle string    `json:"document_title"`
	PageStart     int       `json:"page_start"`
	PageEnd       int       `json:"page_end"`
	SectionPath   string    `json:"section_path"`
}

type SendMessageResponse struct {
	MessageId  uuid.UUID          `json:"message_id"`
	Answer     string             `json:"answer"`
	Action     string             `json:"action"`
	Confidence float64            `json:"confidence"`
	Citations  []CitationResponse `json:"citations"`
	Escalated  bool               `json:"escalated"`
}

type MessageHistoryItem struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Action    string    `json:"action,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionHistoryResponse struct {
	SessionId      uuid.UUID            `json:"session_id"`
	PackageVersion int                  `json:"package_version"`
	Messages       []MessageHistoryItem `json:"messages"`
}
