package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"product-support-be/internal/apperr"
	"product-support-be/internal/constant"
	"product-support-be/internal/dto"
	"product-support-be/internal/entity"
	"product-support-be/internal/pkg/logger"
	"product-support-be/internal/repository/specification"
	"product-support-be/internal/repository/unitofwork"
	"product-support-be/pkg/ingest"

	"github.com/google/uuid"
)

type IIngestionService interface {
	IngestDocument(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	DeleteDocument(ctx context.Context, documentId uuid.UUID) error
	ListDocuments(ctx context.Context, packageId uuid.UUID) ([]dto.DocumentResponse, error)
	ListChunks(ctx context.Context, documentId uuid.UUID) ([]dto.ChunkResponse, error)
}

type ingestionService struct {
	uowFactory       unitofwork.RepositoryFactory
	parser           *ingest.Parser
	publisherService IPublisherService
	log              logger.ILogger
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	parser *ingest.Parser,
	publisherService IPublisherService,
	log logger.ILogger,
) IIngestionService {
	return &ingestionService{
		uowFactory:       uowFactory,
		parser:           parser,
		publisherService: publisherService,
		log:              log,
	}
}

// IngestDocument parses raw text into chunks and stores document and chunks
// in one transaction. Documents can only be added while the package is a
// draft; published content is immutable.
func (s *ingestionService) IngestDocument(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperr.MalformedInput("document content is empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	pkg, err := uow.KnowledgePackageRepository().FindOne(ctx, specification.ByID{ID: req.PackageId})
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperr.NotFound("knowledge package", req.PackageId.String())
	}
	if pkg.Status != constant.PackageStatusDraft {
		return nil, apperr.PreconditionFailed("documents can only be added to a draft package", pkg.Status)
	}

	parsed := s.parser.Parse(req.Title, req.Content)
	if len(parsed.Chunks) == 0 {
		return nil, apperr.MalformedInput("document content produced no chunks")
	}

	doc := &entity.Document{
		Id:             uuid.New(),
		PackageId:      pkg.Id,
		Title:          parsed.Title,
		DocType:        req.DocType,
		TotalPages:     parsed.TotalPages,
		FigureCaptions: parsed.FigureCaptions,
		Metadata:       parsed.Metadata,
		CreatedAt:      time.Now(),
	}

	chunks := make([]*entity.Chunk, len(parsed.Chunks))
	for i, c := range parsed.Chunks {
		chunks[i] = &entity.Chunk{
			Id:              uuid.New(),
			DocumentId:      doc.Id,
			Content:         c.Content,
			PageStart:       c.PageStart,
			PageEnd:         c.PageEnd,
			SectionPath:     c.SectionPath,
			ContentType:     string(c.ContentType),
			TokenCount:      c.TokenCount,
			OrderInDocument: c.OrderInDocument,
			CreatedAt:       time.Now(),
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}
	if err := uow.ChunkRepository().CreateBulk(ctx, chunks); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishEmbedChunksMessage{DocumentId: doc.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		// The document is already stored; embedding can be replayed later.
		s.log.Error("ingestion", "failed to queue embedding job", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}

	s.log.Info("ingestion", "document ingested", map[string]interface{}{
		"document_id": doc.Id.String(),
		"package_id":  pkg.Id.String(),
		"chunks":      len(chunks),
		"pages":       parsed.TotalPages,
	})

	return &dto.IngestDocumentResponse{
		Id:         doc.Id,
		Title:      doc.Title,
		ChunkCount: len(chunks),
		TotalPages: doc.TotalPages,
	}, nil
}

// DeleteDocument removes a document and its chunks. Allowed only while the
// owning package is still a draft.
func (s *ingestionService) DeleteDocument(ctx context.Context, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if doc == nil {
		return apperr.NotFound("document", documentId.String())
	}

	pkg, err := uow.KnowledgePackageRepository().FindOne(ctx, specification.ByID{ID: doc.PackageId})
	if err != nil {
		return err
	}
	if pkg == nil {
		return apperr.NotFound("knowledge package", doc.PackageId.String())
	}
	if pkg.Status != constant.PackageStatusDraft {
		return apperr.PreconditionFailed("documents can only be removed from a draft package", pkg.Status)
	}

	chunks, err := uow.ChunkRepository().FindAll(ctx, specification.ByDocumentID{DocumentID: documentId})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if len(chunks) > 0 {
		chunkIds := make([]uuid.UUID, len(chunks))
		for i, c := range chunks {
			chunkIds[i] = c.Id
		}
		if err := uow.ChunkEmbeddingRepository().DeleteByChunkIds(ctx, chunkIds); err != nil {
			return err
		}
	}
	if err := uow.ChunkRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.log.Info("ingestion", "document deleted", map[string]interface{}{
		"document_id": documentId.String(),
	})
	return nil
}

func (s *ingestionService) ListDocuments(ctx context.Context, packageId uuid.UUID) ([]dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pkg, err := uow.KnowledgePackageRepository().FindOne(ctx, specification.ByID{ID: packageId})
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperr.NotFound("knowledge package", packageId.String())
	}

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByPackageID{PackageID: packageId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		res[i] = dto.DocumentResponse{
			Id:         doc.Id,
			PackageId:  doc.PackageId,
			Title:      doc.Title,
			DocType:    doc.DocType,
			TotalPages: doc.TotalPages,
			CreatedAt:  doc.CreatedAt,
		}
	}
	return res, nil
}

func (s *ingestionService) ListChunks(ctx context.Context, documentId uuid.UUID) ([]dto.ChunkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperr.NotFound("document", documentId.String())
	}

	chunks, err := uow.ChunkRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.OrderBy{Field: "order_in_document"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ChunkResponse, len(chunks))
	for i, c := range chunks {
		res[i] = dto.ChunkResponse{
			Id:              c.Id,
			Content:         c.Content,
			PageStart:       c.PageStart,
			PageEnd:         c.PageEnd,
			SectionPath:     c.SectionPath,
			ContentType:     c.ContentType,
			TokenCount:      c.TokenCount,
			OrderInDocument: c.OrderInDocument,
		}
	}
	return res, nil
}
