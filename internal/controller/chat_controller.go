package controller

import (
	"helpdesk-rag-be/internal/dto"
	"helpdesk-rag-be/internal/pkg/serverutils"
	"helpdesk-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Answer(ctx *fiber.Ctx) error
	HybridAnswer(ctx *fiber.Ctx) error
	TextAnswer(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("/answer", c.Answer)
	h.Post("/hybrid-answer", c.HybridAnswer)
	h.Post("/text-answer", c.TextAnswer)
	h.Delete("/history/:tableId", c.ClearHistory)
}

// Answer uses vector similarity alone.
func (c *chatController) Answer(ctx *fiber.Ctx) error {
	req, err := parseChatRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.VectorAnswer(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Answer generated", res))
}

// HybridAnswer combines lexical and vector scoring. Preferred endpoint.
func (c *chatController) HybridAnswer(ctx *fiber.Ctx) error {
	req, err := parseChatRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.HybridAnswer(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Answer generated", res))
}

// TextAnswer uses lexical relevance alone.
func (c *chatController) TextAnswer(ctx *fiber.Ctx) error {
	req, err := parseChatRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.TextAnswer(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Answer generated", res))
}

func (c *chatController) ClearHistory(ctx *fiber.Ctx) error {
	tableId := ctx.Params("tableId")
	if tableId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "tableId is required"))
	}

	c.service.ClearConversation(tableId)
	return ctx.JSON(serverutils.SuccessResponse[any]("History cleared", nil))
}

func parseChatRequest(ctx *fiber.Ctx) (*dto.ChatRequest, error) {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}
