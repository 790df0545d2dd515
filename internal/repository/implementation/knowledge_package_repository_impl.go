package implementation

import (
	"context"
	"errors"

	"product-support-be/internal/entity"
	"product-support-be/internal/mapper"
	"product-support-be/internal/model"
	"product-support-be/internal/repository/contract"
	"product-support-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KnowledgePackageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgePackageMapper
}

func NewKnowledgePackageRepository(db *gorm.DB) contract.KnowledgePackageRepository {
	return &KnowledgePackageRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgePackageMapper(),
	}
}

func (r *KnowledgePackageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgePackageRepositoryImpl) Create(ctx context.Context, pkg *entity.KnowledgePackage) error {
	m := r.mapper.ToModel(pkg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*pkg = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgePackageRepositoryImpl) Update(ctx context.Context, pkg *entity.KnowledgePackage) error {
	m := r.mapper.ToModel(pkg)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*pkg = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgePackageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KnowledgePackage{}, id).Error
}

func (r *KnowledgePackageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgePackage, error) {
	var m model.KnowledgePackage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KnowledgePackageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgePackage, error) {
	var models []*model.KnowledgePackage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgePackageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.KnowledgePackage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *KnowledgePackageRepositoryImpl) MaxVersion(ctx context.Context, productId uuid.UUID) (int, error) {
	var maxVersion *int
	err := r.db.WithContext(ctx).
		Model(&model.KnowledgePackage{}).
		Unscoped().
		Where("product_id = ?", productId).
		Select("MAX(version)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}
	if maxVersion == nil {
		return 0, nil
	}
	return *maxVersion, nil
}
