package handlers

import (
	"errors"

	"gastonauta/internal/dto"
	"gastonauta/internal/parser"
	"gastonauta/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WebhookHandler struct {
	ingestion *service.IngestionService
	logger    *zap.Logger
}

func NewWebhookHandler(ingestion *service.IngestionService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		ingestion: ingestion,
		logger:    logger,
	}
}

// HandleInbound receives one email payload from the mail gateway and runs
// the full ingestion sequence.
func (h *WebhookHandler) HandleInbound(c *fiber.Ctx) error {
	var email dto.InboundEmail
	if err := c.BodyParser(&email); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON payload",
		})
	}

	resp, err := h.ingestion.Ingest(c.Context(), &email)
	if err != nil {
		if errors.Is(err, service.ErrMissingMessageID) || errors.Is(err, service.ErrMissingBody) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Ingestion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	if !resp.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
	return c.JSON(resp)
}

// HandleParse runs only the parsing stage, without persistence. Useful for
// testing bank formats and for decoupled deployments.
func (h *WebhookHandler) HandleParse(c *fiber.Ctx) error {
	var req dto.ParseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON payload",
		})
	}

	body := req.BodyPlain
	if body == "" {
		body = req.BodyRaw
	}
	if body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing body_plain or body_raw",
		})
	}

	return c.JSON(dto.ParseResponse{
		Success: true,
		Parsed:  parser.Route(req.FromEmail, req.Subject, body),
	})
}
