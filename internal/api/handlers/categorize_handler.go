package handlers

import (
	"errors"

	"gastonauta/internal/dto"
	"gastonauta/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategorizeHandler struct {
	categorization *service.CategorizationService
	logger         *zap.Logger
}

func NewCategorizeHandler(categorization *service.CategorizationService, logger *zap.Logger) *CategorizeHandler {
	return &CategorizeHandler{
		categorization: categorization,
		logger:         logger,
	}
}

// HandleCategorize classifies a single transaction by id, or a bounded
// batch of uncategorized transactions when no id is given.
func (h *CategorizeHandler) HandleCategorize(c *fiber.Ctx) error {
	var req dto.CategorizeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid JSON payload",
			})
		}
	}

	resp, err := h.categorization.Run(c.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNoCategories) {
			h.logger.Error("No active categories configured")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": service.ErrNoCategories.Error(),
			})
		}
		h.logger.Error("Categorization run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(resp)
}
