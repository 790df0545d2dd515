package service

import (
	"context"
	"testing"
	"time"

	"product-support-be/internal/apperr"
	"product-support-be/internal/constant"
	"product-support-be/internal/dto"
	"product-support-be/internal/entity"
	"product-support-be/internal/repository/unitofwork"
	"product-support-be/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPackageService(t *testing.T) (IPackageService, unitofwork.RepositoryFactory) {
	t.Helper()
	factory := newTestFactory(t)
	svc := NewPackageService(factory, cache.NewPackageCache(nil, 0), nil, testLogger(t))
	return svc, factory
}

func seedProduct(t *testing.T, svc IPackageService, sku string) uuid.UUID {
	t.Helper()
	res, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{
		SKU:  sku,
		Name: "Test Appliance " + sku,
	})
	require.NoError(t, err)
	return res.Id
}

func seedDocument(t *testing.T, factory unitofwork.RepositoryFactory, packageId uuid.UUID) {
	t.Helper()
	uow := factory.NewUnitOfWork(context.Background())
	err := uow.DocumentRepository().Create(context.Background(), &entity.Document{
		Id:         uuid.New(),
		PackageId:  packageId,
		Title:      "Manual",
		DocType:    constant.DocumentTypeManual,
		TotalPages: 1,
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	svc, _ := newPackageService(t)
	seedProduct(t, svc, "WM-100")

	_, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{
		SKU:  "WM-100",
		Name: "Another Appliance",
	})
	assert.True(t, apperr.IsPrecondition(err))
}

func TestCreateDraftIsIdempotentWhileOpen(t *testing.T) {
	svc, _ := newPackageService(t)
	productId := seedProduct(t, svc, "WM-101")

	first, err := svc.CreateDraft(context.Background(), productId)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, constant.PackageStatusDraft, first.Status)

	second, err := svc.CreateDraft(context.Background(), productId)
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id, "an open draft must be returned, not duplicated")
}

func TestCreateDraftForUnknownProduct(t *testing.T) {
	svc, _ := newPackageService(t)

	_, err := svc.CreateDraft(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestPublishRequiresDocuments(t *testing.T) {
	svc, _ := newPackageService(t)
	productId := seedProduct(t, svc, "WM-102")

	draft, err := svc.CreateDraft(context.Background(), productId)
	require.NoError(t, err)

	_, err = svc.Publish(context.Background(), draft.Id)
	assert.True(t, apperr.IsPrecondition(err))
}

func TestPublishArchivesPreviousActive(t *testing.T) {
	svc, factory := newPackageService(t)
	productId := seedProduct(t, svc, "WM-103")
	ctx := context.Background()

	v1, err := svc.CreateDraft(ctx, productId)
	require.NoError(t, err)
	seedDocument(t, factory, v1.Id)

	published, err := svc.Publish(ctx, v1.Id)
	require.NoError(t, err)
	assert.Equal(t, constant.PackageStatusActive, published.Status)
	require.NotNil(t, published.PublishedAt)

	v2, err := svc.CreateDraft(ctx, productId)
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Version)
	seedDocument(t, factory, v2.Id)

	_, err = svc.Publish(ctx, v2.Id)
	require.NoError(t, err)

	list, err := svc.ListPackages(ctx, productId)
	require.NoError(t, err)
	require.Len(t, list.Packages, 2)

	active := 0
	for _, pkg := range list.Packages {
		if pkg.Status == constant.PackageStatusActive {
			active++
			assert.Equal(t, 2, pkg.Version)
		}
	}
	assert.Equal(t, 1, active, "exactly one package may serve at a time")
}

func TestPublishRejectsNonDraft(t *testing.T) {
	svc, factory := newPackageService(t)
	productId := seedProduct(t, svc, "WM-104")
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, productId)
	require.NoError(t, err)
	seedDocument(t, factory, draft.Id)

	_, err = svc.Publish(ctx, draft.Id)
	require.NoError(t, err)

	_, err = svc.Publish(ctx, draft.Id)
	assert.True(t, apperr.IsPrecondition(err))
}

func TestRollbackReactivatesArchivedVersion(t *testing.T) {
	svc, factory := newPackageService(t)
	productId := seedProduct(t, svc, "WM-105")
	ctx := context.Background()

	// Publish v1, then v2 on top of it.
	v1, err := svc.CreateDraft(ctx, productId)
	require.NoError(t, err)
	seedDocument(t, factory, v1.Id)
	_, err = svc.Publish(ctx, v1.Id)
	require.NoError(t, err)

	v2, err := svc.CreateDraft(ctx, productId)
	require.NoError(t, err)
	seedDocument(t, factory, v2.Id)
	_, err = svc.Publish(ctx, v2.Id)
	require.NoError(t, err)

	rolled, err := svc.Rollback(ctx, productId, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rolled.Version, "rollback keeps the original version number")
	assert.Equal(t, constant.PackageStatusActive, rolled.Status)
	require.NotNil(t, rolled.PublishedAt, "rollback stamps a fresh publish timestamp")

	active, err := svc.ActivePackage(ctx, productId)
	require.NoError(t, err)
	assert.Equal(t, v1.Id, active.Id)

	// Version numbering keeps growing after a rollback.
	v3, err := svc.CreateDraft(ctx, productId)
	require.NoError(t, err)
	assert.Equal(t, 3, v3.Version)
}

func TestRollbackDefaultsToLatestArchived(t *testing.T) {
	svc, factory := newPackageService(t)
	productId := seedProduct(t, svc, "WM-108")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		draft, err := svc.CreateDraft(ctx, productId)
		require.NoError(t, err)
		seedDocument(t, factory, draft.Id)
		_, err = svc.Publish(ctx, draft.Id)
		require.NoError(t, err)
	}

	// v1 and v2 are archived; omitting the version picks the newest of them.
	rolled, err := svc.Rollback(ctx, productId, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, rolled.Version)
}

func TestRollbackWithoutActivePackage(t *testing.T) {
	svc, _ := newPackageService(t)
	productId := seedProduct(t, svc, "WM-109")
	ctx := context.Background()

	_, err := svc.CreateDraft(ctx, productId)
	require.NoError(t, err)

	_, err = svc.Rollback(ctx, productId, 0)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRollbackRejectsNonArchivedTarget(t *testing.T) {
	svc, factory := newPackageService(t)
	productId := seedProduct(t, svc, "WM-106")
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, productId)
	require.NoError(t, err)
	seedDocument(t, factory, draft.Id)
	_, err = svc.Publish(ctx, draft.Id)
	require.NoError(t, err)

	// v1 is currently active, not archived.
	_, err = svc.Rollback(ctx, productId, 1)
	assert.True(t, apperr.IsPrecondition(err))

	_, err = svc.Rollback(ctx, productId, 9)
	assert.True(t, apperr.IsNotFound(err))
}

func TestActivePackageWithoutPublish(t *testing.T) {
	svc, _ := newPackageService(t)
	productId := seedProduct(t, svc, "WM-107")

	_, err := svc.ActivePackage(context.Background(), productId)
	assert.True(t, apperr.IsNotFound(err))
}
