package controller

import (
	"helpdesk-rag-be/internal/pkg/serverutils"
	"helpdesk-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIndexController interface {
	RegisterRoutes(r fiber.Router)
	EnsureIndex(ctx *fiber.Ctx) error
	DeleteIndex(ctx *fiber.Ctx) error
	IndexInfo(ctx *fiber.Ctx) error
}

type indexController struct {
	service service.IIndexService
}

func NewIndexController(service service.IIndexService) IIndexController {
	return &indexController{service: service}
}

func (c *indexController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/index/v1")
	h.Post("/", c.EnsureIndex)
	h.Delete("/", c.DeleteIndex)
	h.Get("/", c.IndexInfo)
}

func (c *indexController) EnsureIndex(ctx *fiber.Ctx) error {
	created, err := c.service.EnsureIndex(ctx.Context())
	if err != nil {
		return err
	}

	message := "Index already exists"
	if created {
		message = "Index created"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, map[string]bool{"created": created}))
}

func (c *indexController) DeleteIndex(ctx *fiber.Ctx) error {
	deleted, err := c.service.DeleteIndex(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Index delete processed", map[string]bool{"deleted": deleted}))
}

func (c *indexController) IndexInfo(ctx *fiber.Ctx) error {
	info, err := c.service.IndexInfo(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Index info", info))
}
