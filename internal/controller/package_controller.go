package controller

import (
	"product-support-be/internal/apperr"
	"product-support-be/internal/dto"
	"product-support-be/internal/pkg/serverutils"
	"product-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPackageController interface {
	RegisterRoutes(r fiber.Router)
	CreateProduct(ctx *fiber.Ctx) error
	CreateDraft(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
	Rollback(ctx *fiber.Ctx) error
	ListPackages(ctx *fiber.Ctx) error
}

type packageController struct {
	packageService service.IPackageService
}

func NewPackageController(packageService service.IPackageService) IPackageController {
	return &packageController{
		packageService: packageService,
	}
}

func (c *packageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Post("products", c.CreateProduct)
	h.Get("products/:productId/packages", c.ListPackages)
	h.Post("products/:productId/packages", c.CreateDraft)
	h.Post("packages/:id/publish", c.Publish)
	h.Post("packages/rollback", c.Rollback)
}

func (c *packageController) CreateProduct(ctx *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.packageService.CreateProduct(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create product", res))
}

func (c *packageController) CreateDraft(ctx *fiber.Ctx) error {
	productId, err := uuid.Parse(ctx.Params("productId"))
	if err != nil {
		return apperr.MalformedInput("invalid product id")
	}

	res, err := c.packageService.CreateDraft(ctx.Context(), productId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create draft package", res))
}

func (c *packageController) Publish(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperr.MalformedInput("invalid package id")
	}

	res, err := c.packageService.Publish(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success publish package", res))
}

func (c *packageController) Rollback(ctx *fiber.Ctx) error {
	var req dto.RollbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.packageService.Rollback(ctx.Context(), req.ProductId, req.Version)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rollback package", res))
}

func (c *packageController) ListPackages(ctx *fiber.Ctx) error {
	productId, err := uuid.Parse(ctx.Params("productId"))
	if err != nil {
		return apperr.MalformedInput("invalid product id")
	}

	res, err := c.packageService.ListPackages(ctx.Context(), productId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list packages", res))
}
