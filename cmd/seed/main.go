package main

import (
	"context"
	"log"
	"os"

	"product-support-be/internal/constant"
	"product-support-be/internal/dto"
	"product-support-be/internal/entity"
	"product-support-be/internal/pkg/logger"
	"product-support-be/internal/repository/specification"
	"product-support-be/internal/repository/unitofwork"
	"product-support-be/internal/service"
	"product-support-be/pkg/database"
	"product-support-be/pkg/ingest"
	"product-support-be/pkg/ingest/assemble"
	"product-support-be/pkg/ingest/classify"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
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

Connect the appliance to a grounded outlet rated for 220-240V.
Do not use extension cords or multi-socket adapters. If the supply cord
is damaged, it must be replaced by the manufacturer or a qualified
technician.

Troubleshooting

If the unit does not start, check that the outlet has power and the
door is fully closed. Error E3 means the water inlet is blocked: close
the tap, clean the inlet filter and restart the program.`

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, payload []byte) error { return nil }

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	uow := uowFactory.NewUnitOfWork(ctx)
	seedLogger := logger.NewIsolatedLogger("seed.log")

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	// 1. Product
	const sku = "WM-2400-X"
	product, err := uow.ProductRepository().FindOne(ctx, specification.BySKU{SKU: sku})
	if err != nil {
		log.Fatalf("Error: failed to look up product: %v", err)
	}
	if product == nil {
		product = &entity.Product{
			SKU:  sku,
			Name: "AquaWash 2400 Front-Load Washer",
		}
		packageService := service.NewPackageService(uowFactory, nil, nil, seedLogger)
		res, err := packageService.CreateProduct(ctx, &dto.CreateProductRequest{SKU: sku, Name: product.Name})
		if err != nil {
			log.Fatalf("Error: failed to create product: %v", err)
		}
		product.Id = res.Id
		log.Printf("%s Product created: %s (%s)", green("✔"), product.Name, sku)
	} else {
		log.Printf("%s Product already exists: %s", yellow("→"), sku)
	}

	packageService := service.NewPackageService(uowFactory, nil, nil, seedLogger)

	// 2. Draft package
	draft, err := packageService.CreateDraft(ctx, product.Id)
	if err != nil {
		log.Fatalf("Error: failed to create draft package: %v", err)
	}
	if draft.Status != constant.PackageStatusDraft {
		log.Printf("%s Package v%d is %s, nothing to seed into it", yellow("→"), draft.Version, draft.Status)
		return
	}
	log.Printf("%s Draft package ready: v%d", green("✔"), draft.Version)

	// 3. Sample manual
	parser := ingest.NewParser(assemble.DefaultConfig(), classify.DefaultConfig())
	ingestionService := service.NewIngestionService(uowFactory, parser, noopPublisher{}, seedLogger)

	docs, err := ingestionService.ListDocuments(ctx, draft.Id)
	if err != nil {
		log.Fatalf("Error: failed to list documents: %v", err)
	}
	if len(docs) > 0 {
		log.Printf("%s Draft already has %d document(s), skipping ingestion", yellow("→"), len(docs))
		return
	}

	res, err := ingestionService.IngestDocument(ctx, &dto.IngestDocumentRequest{
		PackageId: draft.Id,
		Title:     "Installation Guide",
		DocType:   constant.DocumentTypeManual,
		Content:   sampleManual,
	})
	if err != nil {
		log.Fatalf("Error: failed to ingest sample manual: %v", err)
	}

	log.Printf("%s Sample manual ingested: %d chunks across %d page(s)", green("✔"), res.ChunkCount, res.TotalPages)
	log.Printf("%s Seed complete. Publish the draft via POST /api/catalog/v1/packages/%s/publish", green("✔"), draft.Id)
}
