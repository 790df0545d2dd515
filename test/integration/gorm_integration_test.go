package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"product-support-be/internal/constant"
	"product-support-be/internal/entity"
	"product-support-be/internal/repository/specification"
	"product-support-be/internal/repository/unitofwork"
	"product-support-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ProductRepository())
	assert.NotNil(t, uow.KnowledgePackageRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Chunk Repository", func(t *testing.T) {
		count, err := uow.ChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Chunk count: %d", count)
	})

	t.Run("Check Transactional Package Lifecycle", func(t *testing.T) {
		ctx := context.Background()

		product := &entity.Product{
			Id:        uuid.New(),
			SKU:       "integration-" + uuid.New().String(),
			Name:      "Integration Test Appliance",
			CreatedAt: time.Now(),
		}
		err := uow.ProductRepository().Create(ctx, product)
		assert.NoError(t, err)

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		pkg := &entity.KnowledgePackage{
			Id:        uuid.New(),
			ProductId: product.Id,
			Version:   1,
			Status:    constant.PackageStatusDraft,
			CreatedAt: time.Now(),
		}
		err = uow.KnowledgePackageRepository().Create(ctx, pkg)
		assert.NoError(t, err)

		doc := &entity.Document{
			Id:        uuid.New(),
			PackageId: pkg.Id,
			Title:     "Integration Manual",
			DocType:   constant.DocumentTypeManual,
			CreatedAt: time.Now(),
		}
		err = uow.DocumentRepository().Create(ctx, doc)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		found, err := uow.KnowledgePackageRepository().FindOne(ctx, specification.ByID{ID: pkg.Id})
		assert.NoError(t, err)
		assert.NotNil(t, found)

		t.Log("Successfully created Package with Document in Transaction")
	})
}
