package controller

import (
	"helpdesk-rag-be/internal/dto"
	"helpdesk-rag-be/internal/pkg/serverutils"
	"helpdesk-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQAController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	UploadBatch(ctx *fiber.Ctx) error
}

type qaController struct {
	service service.IQAService
}

func NewQAController(service service.IQAService) IQAController {
	return &qaController{service: service}
}

func (c *qaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/qa-data/v1")
	h.Post("/upload", c.Upload)
	h.Post("/upload-batch", c.UploadBatch)
}

func (c *qaController) Upload(ctx *fiber.Ctx) error {
	var req dto.QAUploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Pair queued for indexing", res))
}

func (c *qaController) UploadBatch(ctx *fiber.Ctx) error {
	var req dto.QABatchUploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UploadBatch(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Batch queued for indexing", res))
}
