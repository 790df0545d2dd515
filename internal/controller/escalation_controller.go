package controller

import (
	"product-support-be/internal/apperr"
	"product-support-be/internal/pkg/serverutils"
	"product-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEscalationController interface {
	RegisterRoutes(r fiber.Router)
	ListOpen(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
}

type escalationController struct {
	escalationService service.IEscalationService
}

func NewEscalationController(escalationService service.IEscalationService) IEscalationController {
	return &escalationController{
		escalationService: escalationService,
	}
}

func (c *escalationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/escalation/v1")
	h.Get("open", c.ListOpen)
	h.Post(":id/resolve", c.Resolve)
}

func (c *escalationController) ListOpen(ctx *fiber.Ctx) error {
	res, err := c.escalationService.ListOpen(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list open escalations", res))
}

func (c *escalationController) Resolve(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperr.MalformedInput("invalid escalation id")
	}

	if err := c.escalationService.Resolve(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve escalation", struct{}{}))
}
