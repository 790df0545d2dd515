package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByProductID filters package and session queries by product
type ByProductID struct {
	ProductID uuid.UUID
}

func (s ByProductID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("product_id = ?", s.ProductID)
}

// ByStatus filters by lifecycle or escalation status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByVersion filters packages by version number
type ByVersion struct {
	Version int
}

func (s ByVersion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("version = ?", s.Version)
}

// ByPackageID filters documents by owning package
type ByPackageID struct {
	PackageID uuid.UUID
}

func (s ByPackageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("package_id = ?", s.PackageID)
}

// ByPackageIDs filters documents across several packages
type ByPackageIDs struct {
	PackageIDs []uuid.UUID
}

func (s ByPackageIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("package_id IN ?", s.PackageIDs)
}

// ByDocumentID filters chunks by owning document
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// ByDocumentIDs filters chunks across several documents
type ByDocumentIDs struct {
	DocumentIDs []uuid.UUID
}

func (s ByDocumentIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id IN ?", s.DocumentIDs)
}

// ByContentType filters chunks by classification
type ByContentType struct {
	ContentType string
}

func (s ByContentType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content_type = ?", s.ContentType)
}

// BySessionID filters messages, citations and escalations by chat session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByMessageID filters citations by message
type ByMessageID struct {
	MessageID uuid.UUID
}

func (s ByMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("message_id = ?", s.MessageID)
}

// BySKU filters products by stock keeping unit
type BySKU struct {
	SKU string
}

func (s BySKU) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sku = ?", s.SKU)
}

// ByChunkID filters embeddings by chunk
type ByChunkID struct {
	ChunkID uuid.UUID
}

func (s ByChunkID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chunk_id = ?", s.ChunkID)
}
