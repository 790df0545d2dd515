package service

import (
	"context"
	"encoding/json"
	"testing"

	"product-support-be/internal/apperr"
	"product-support-be/internal/constant"
	"product-support-be/internal/dto"
	"product-support-be/internal/repository/unitofwork"
	"product-support-be/pkg/cache"
	"product-support-be/pkg/ingest"
	"product-support-be/pkg/ingest/assemble"
	"product-support-be/pkg/ingest/classify"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManual = `INSTALLATION GUIDE

Safety Warnings

WARNING: Disconnect the appliance from mains power before servicing.
Risk of electric shock. Never operate the unit with the rear panel removed.

Mounting the Unit

1. Remove the shipping brackets from the base.
2. Position the unit at least 5 cm from the wall.
3. Level the unit using the adjustable front feet.

Electrical Connection

Connect the appliance to a grounded outlet rated for 220-240V. Do not use
extension cords or multi-socket adapters. If the supply cord is damaged, it
must be replaced by the manufacturer or a qualified technician.`

type capturePublisher struct {
	payloads [][]byte
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newIngestionFixture(t *testing.T) (IIngestionService, IPackageService, unitofwork.RepositoryFactory, *capturePublisher) {
	t.Helper()
	factory := newTestFactory(t)
	log := testLogger(t)

	pub := &capturePublisher{}
	parser := ingest.NewParser(
		assemble.Config{TargetTokens: 60, MaxTokens: 90, MinTokens: 15, OverlapTokens: 10},
		classify.DefaultConfig(),
	)
	ingestion := NewIngestionService(factory, parser, pub, log)
	packages := NewPackageService(factory, cache.NewPackageCache(nil, 0), nil, log)
	return ingestion, packages, factory, pub
}

func draftForNewProduct(t *testing.T, packages IPackageService, sku string) uuid.UUID {
	t.Helper()
	productId := seedProduct(t, packages, sku)
	draft, err := packages.CreateDraft(context.Background(), productId)
	require.NoError(t, err)
	return draft.Id
}

func TestIngestDocumentIntoDraft(t *testing.T) {
	ingestion, packages, _, pub := newIngestionFixture(t)
	draftId := draftForNewProduct(t, packages, "DW-200")
	ctx := context.Background()

	res, err := ingestion.IngestDocument(ctx, &dto.IngestDocumentRequest{
		PackageId: draftId,
		Title:     "Installation Guide",
		DocType:   constant.DocumentTypeManual,
		Content:   sampleManual,
	})
	require.NoError(t, err)
	assert.Equal(t, "Installation Guide", res.Title)
	assert.Greater(t, res.ChunkCount, 0)

	chunks, err := ingestion.ListChunks(ctx, res.Id)
	require.NoError(t, err)
	require.Len(t, chunks, res.ChunkCount)
	for i, c := range chunks {
		assert.Equal(t, i, c.OrderInDocument)
		assert.NotEmpty(t, c.Content)
		assert.NotEmpty(t, c.ContentType)
	}

	// The embedding job is queued exactly once, for this document.
	require.Len(t, pub.payloads, 1)
	var msg dto.PublishEmbedChunksMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, res.Id, msg.DocumentId)
}

func TestIngestDocumentTitleFallsBackToHeading(t *testing.T) {
	ingestion, packages, _, _ := newIngestionFixture(t)
	draftId := draftForNewProduct(t, packages, "DW-201")

	res, err := ingestion.IngestDocument(context.Background(), &dto.IngestDocumentRequest{
		PackageId: draftId,
		DocType:   constant.DocumentTypeQuickStart,
		Content:   sampleManual,
	})
	require.NoError(t, err)
	assert.Equal(t, "INSTALLATION GUIDE", res.Title)
}

func TestIngestDocumentRejectsEmptyContent(t *testing.T) {
	ingestion, packages, _, _ := newIngestionFixture(t)
	draftId := draftForNewProduct(t, packages, "DW-202")

	_, err := ingestion.IngestDocument(context.Background(), &dto.IngestDocumentRequest{
		PackageId: draftId,
		DocType:   constant.DocumentTypeManual,
		Content:   "   \n\n  ",
	})
	assert.True(t, apperr.IsMalformedInput(err))
}

func TestIngestDocumentRejectsPublishedPackage(t *testing.T) {
	ingestion, packages, _, _ := newIngestionFixture(t)
	draftId := draftForNewProduct(t, packages, "DW-203")
	ctx := context.Background()

	_, err := ingestion.IngestDocument(ctx, &dto.IngestDocumentRequest{
		PackageId: draftId,
		DocType:   constant.DocumentTypeManual,
		Content:   sampleManual,
	})
	require.NoError(t, err)

	_, err = packages.Publish(ctx, draftId)
	require.NoError(t, err)

	_, err = ingestion.IngestDocument(ctx, &dto.IngestDocumentRequest{
		PackageId: draftId,
		DocType:   constant.DocumentTypeFAQ,
		Content:   "Q: Does it beep? A: Yes, twice at the end of every cycle.",
	})
	assert.True(t, apperr.IsPrecondition(err))
}

func TestDeleteDocumentOnlyWhileDraft(t *testing.T) {
	ingestion, packages, _, _ := newIngestionFixture(t)
	draftId := draftForNewProduct(t, packages, "DW-204")
	ctx := context.Background()

	first, err := ingestion.IngestDocument(ctx, &dto.IngestDocumentRequest{
		PackageId: draftId,
		Title:     "Old Manual",
		DocType:   constant.DocumentTypeManual,
		Content:   sampleManual,
	})
	require.NoError(t, err)

	second, err := ingestion.IngestDocument(ctx, &dto.IngestDocumentRequest{
		PackageId: draftId,
		Title:     "Quick Start",
		DocType:   constant.DocumentTypeQuickStart,
		Content:   sampleManual,
	})
	require.NoError(t, err)

	require.NoError(t, ingestion.DeleteDocument(ctx, first.Id))

	docs, err := ingestion.ListDocuments(ctx, draftId)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, second.Id, docs[0].Id)

	// Chunks go with the document.
	_, err = ingestion.ListChunks(ctx, first.Id)
	assert.True(t, apperr.IsNotFound(err))

	_, err = packages.Publish(ctx, draftId)
	require.NoError(t, err)

	err = ingestion.DeleteDocument(ctx, second.Id)
	assert.True(t, apperr.IsPrecondition(err))
}

func TestListDocumentsUnknownPackage(t *testing.T) {
	ingestion, _, _, _ := newIngestionFixture(t)

	_, err := ingestion.ListDocuments(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}
