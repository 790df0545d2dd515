package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngestDocumentRequest struct {
	PackageId uuid.UUID `json:"package_id" validate:"required"`
	Title     string    `json:"title"`
	DocType   string    `json:"doc_type" validate:"required,oneof=MANUAL QUICK_START SAFETY_NOTICE FAQ"`
	Content   string    `json:"content" validate:"required"`
}

type IngestDocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	ChunkCount int       `json:"chunk_count"`
	TotalPages int       `json:"total_pages"`
}

type DocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	PackageId  uuid.UUID `json:"package_id"`
	Title      string    `json:"title"`
	DocType    string    `json:"doc_type"`
	TotalPages int       `json:"total_pages"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChunkResponse struct {
	Id              uuid.UUID `json:"id"`
	Content         string    `json:"content"`
	PageStart       int       `json:"page_start"`
	PageEnd         int       `json:"page_end"`
	SectionPath     string    `json:"section_path"`
	ContentType     string    `json:"content_type"`
	TokenCount      int       `json:"token_count"`
	OrderInDocument int       `json:"order_in_document"`
}

// PublishEmbedChunksMessage is the payload for the embedding worker topic.
type PublishEmbedChunksMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
