package service

import (
	"context"
	"time"

	"product-support-be/internal/apperr"
	"product-support-be/internal/constant"
	"product-support-be/internal/dto"
	"product-support-be/internal/entity"
	"product-support-be/internal/pkg/logger"
	"product-support-be/internal/repository/specification"
	"product-support-be/internal/repository/unitofwork"
	"product-support-be/pkg/cache"
	"product-support-be/pkg/events"
	"product-support-be/pkg/nats"

	"github.com/google/uuid"
)

type IPackageService interface {
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.CreateProductResponse, error)
	CreateDraft(ctx context.Context, productId uuid.UUID) (*dto.PackageResponse, error)
	Publish(ctx context.Context, packageId uuid.UUID) (*dto.PackageResponse, error)
	Rollback(ctx context.Context, productId uuid.UUID, version int) (*dto.PackageResponse, error)
	ActivePackage(ctx context.Context, productId uuid.UUID) (*entity.KnowledgePackage, error)
	ListPackages(ctx context.Context, productId uuid.UUID) (*dto.ListPackagesResponse, error)
}

type packageService struct {
	uowFactory   unitofwork.RepositoryFactory
	packageCache *cache.PackageCache
	natsPub      *nats.Publisher
	log          logger.ILogger
}

func NewPackageService(
	uowFactory unitofwork.RepositoryFactory,
	packageCache *cache.PackageCache,
	natsPub *nats.Publisher,
	log logger.ILogger,
) IPackageService {
	return &packageService{
		uowFactory:   uowFactory,
		packageCache: packageCache,
		natsPub:      natsPub,
		log:          log,
	}
}

func (s *packageService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ProductRepository().FindOne(ctx, specification.BySKU{SKU: req.SKU})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.PreconditionFailed("product with this SKU already exists", existing.SKU)
	}

	product := &entity.Product{
		Id:        uuid.New(),
		SKU:       req.SKU,
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := uow.ProductRepository().Create(ctx, product); err != nil {
		return nil, err
	}

	return &dto.CreateProductResponse{Id: product.Id}, nil
}

// CreateDraft returns the product's existing draft when one is open instead
// of stacking a second: authors keep amending one draft until they publish.
func (s *packageService) CreateDraft(ctx context.Context, productId uuid.UUID) (*dto.PackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: productId})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product", productId.String())
	}

	draft, err := uow.KnowledgePackageRepository().FindOne(ctx,
		specification.ByProductID{ProductID: productId},
		specification.ByStatus{Status: constant.PackageStatusDraft},
	)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return toPackageResponse(draft), nil
	}

	maxVersion, err := uow.KnowledgePackageRepository().MaxVersion(ctx, productId)
	if err != nil {
		return nil, err
	}

	pkg := &entity.KnowledgePackage{
		Id:        uuid.New(),
		ProductId: productId,
		Version:   maxVersion + 1,
		Status:    constant.PackageStatusDraft,
		CreatedAt: time.Now(),
	}
	if err := uow.KnowledgePackageRepository().Create(ctx, pkg); err != nil {
		return nil, err
	}

	s.log.Info("package", "draft created", map[string]interface{}{
		"product_id": productId.String(),
		"version":    pkg.Version,
	})
	return toPackageResponse(pkg), nil
}

// Publish atomically swaps the draft in: the previously active package is
// archived and the draft becomes ACTIVE in one transaction, so readers never
// observe zero or two active packages.
func (s *packageService) Publish(ctx context.Context, packageId uuid.UUID) (*dto.PackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pkg, err := uow.KnowledgePackageRepository().FindOne(ctx, specification.ByID{ID: packageId})
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperr.NotFound("knowledge package", packageId.String())
	}
	if pkg.Status != constant.PackageStatusDraft {
		return nil, apperr.PreconditionFailed("only a draft package can be published", pkg.Status)
	}

	docCount, err := uow.DocumentRepository().Count(ctx, specification.ByPackageID{PackageID: pkg.Id})
	if err != nil {
		return nil, err
	}
	if docCount == 0 {
		return nil, apperr.PreconditionFailed("package has no documents", constant.PackageStatusDraft)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()

	current, err := uow.KnowledgePackageRepository().FindOne(ctx,
		specification.ByProductID{ProductID: pkg.ProductId},
		specification.ByStatus{Status: constant.PackageStatusActive},
	)
	if err != nil {
		return nil, err
	}
	if current != nil {
		current.Status = constant.PackageStatusArchived
		current.ArchivedAt = &now
		if err := uow.KnowledgePackageRepository().Update(ctx, current); err != nil {
			return nil, err
		}
	}

	pkg.Status = constant.PackageStatusActive
	pkg.PublishedAt = &now
	if err := uow.KnowledgePackageRepository().Update(ctx, pkg); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.packageCache.Invalidate(ctx, pkg.ProductId.String())
	s.publishLifecycleEvent(ctx, "PACKAGE_PUBLISHED", pkg)

	s.log.Info("package", "package published", map[string]interface{}{
		"product_id": pkg.ProductId.String(),
		"version":    pkg.Version,
	})
	return toPackageResponse(pkg), nil
}

// Rollback archives the currently active package and re-activates an
// archived version, the most recent one when no version is given. The
// re-activated package keeps its original version number but gets a fresh
// publish timestamp; versions only ever grow through new drafts.
func (s *packageService) Rollback(ctx context.Context, productId uuid.UUID, version int) (*dto.PackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	current, err := uow.KnowledgePackageRepository().FindOne(ctx,
		specification.ByProductID{ProductID: productId},
		specification.ByStatus{Status: constant.PackageStatusActive},
	)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperr.NotFound("active knowledge package for product", productId.String())
	}

	targetSpecs := []specification.Specification{
		specification.ByProductID{ProductID: productId},
	}
	if version > 0 {
		targetSpecs = append(targetSpecs, specification.ByVersion{Version: version})
	} else {
		targetSpecs = append(targetSpecs,
			specification.ByStatus{Status: constant.PackageStatusArchived},
			specification.OrderBy{Field: "version", Desc: true},
		)
	}
	target, err := uow.KnowledgePackageRepository().FindOne(ctx, targetSpecs...)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperr.NotFound("archived knowledge package to roll back to", productId.String())
	}
	if target.Status != constant.PackageStatusArchived {
		return nil, apperr.PreconditionFailed("only an archived version can be rolled back to", target.Status)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()

	current.Status = constant.PackageStatusArchived
	current.ArchivedAt = &now
	if err := uow.KnowledgePackageRepository().Update(ctx, current); err != nil {
		return nil, err
	}

	target.Status = constant.PackageStatusActive
	target.PublishedAt = &now
	target.ArchivedAt = nil
	if err := uow.KnowledgePackageRepository().Update(ctx, target); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.packageCache.Invalidate(ctx, productId.String())
	s.publishLifecycleEvent(ctx, "PACKAGE_ROLLED_BACK", target)

	s.log.Warn("package", "package rolled back", map[string]interface{}{
		"product_id": productId.String(),
		"version":    target.Version,
	})
	return toPackageResponse(target), nil
}

// ActivePackage resolves the serving package through a Redis read-through
// cache; a cache outage degrades to a database read.
func (s *packageService) ActivePackage(ctx context.Context, productId uuid.UUID) (*entity.KnowledgePackage, error) {
	if cached, _ := s.packageCache.Get(ctx, productId.String()); cached != nil {
		pkgId, err := uuid.Parse(cached.PackageID)
		if err == nil {
			return &entity.KnowledgePackage{
				Id:        pkgId,
				ProductId: productId,
				Version:   cached.Version,
				Status:    constant.PackageStatusActive,
			}, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pkg, err := uow.KnowledgePackageRepository().FindOne(ctx,
		specification.ByProductID{ProductID: productId},
		specification.ByStatus{Status: constant.PackageStatusActive},
	)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, apperr.NotFound("active knowledge package for product", productId.String())
	}

	s.packageCache.Set(ctx, productId.String(), cache.ActivePackage{
		PackageID: pkg.Id.String(),
		Version:   pkg.Version,
	})
	return pkg, nil
}

func (s *packageService) ListPackages(ctx context.Context, productId uuid.UUID) (*dto.ListPackagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: productId})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product", productId.String())
	}

	packages, err := uow.KnowledgePackageRepository().FindAll(ctx,
		specification.ByProductID{ProductID: productId},
		specification.OrderBy{Field: "version", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListPackagesResponse{Packages: make([]dto.PackageResponse, len(packages))}
	for i, pkg := range packages {
		res.Packages[i] = *toPackageResponse(pkg)
	}
	return res, nil
}

func (s *packageService) publishLifecycleEvent(ctx context.Context, eventType string, pkg *entity.KnowledgePackage) {
	if s.natsPub == nil {
		return
	}
	err := s.natsPub.Publish(ctx, events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"package_id": pkg.Id.String(),
			"product_id": pkg.ProductId.String(),
			"version":    pkg.Version,
		},
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.log.Warn("package", "failed to publish lifecycle event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func toPackageResponse(pkg *entity.KnowledgePackage) *dto.PackageResponse {
	return &dto.PackageResponse{
		Id:          pkg.Id,
		ProductId:   pkg.ProductId,
		Version:     pkg.Version,
		Status:      pkg.Status,
		PublishedAt: pkg.PublishedAt,
		ArchivedAt:  pkg.ArchivedAt,
		CreatedAt:   pkg.CreatedAt,
	}
}
