package controller

import (
	"product-support-be/internal/apperr"
	"product-support-be/internal/dto"
	"product-support-be/internal/pkg/serverutils"
	"product-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
	ListChunks(ctx *fiber.Ctx) error
}

type documentController struct {
	ingestionService service.IIngestionService
}

func NewDocumentController(ingestionService service.IIngestionService) IDocumentController {
	return &documentController{
		ingestionService: ingestionService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Post("", c.Ingest)
	h.Delete(":id", c.Delete)
	h.Get("package/:packageId", c.ListDocuments)
	h.Get(":id/chunks", c.ListChunks)
}

func (c *documentController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.IngestDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success ingest document", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperr.MalformedInput("invalid document id")
	}

	if err := c.ingestionService.DeleteDocument(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete document", struct{}{}))
}

func (c *documentController) ListDocuments(ctx *fiber.Ctx) error {
	packageId, err := uuid.Parse(ctx.Params("packageId"))
	if err != nil {
		return apperr.MalformedInput("invalid package id")
	}

	res, err := c.ingestionService.ListDocuments(ctx.Context(), packageId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) ListChunks(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperr.MalformedInput("invalid document id")
	}

	res, err := c.ingestionService.ListChunks(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list chunks", res))
}
