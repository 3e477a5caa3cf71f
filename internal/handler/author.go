package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/asozialesnetzwerk/zitate-go/internal/middleware"
	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/internal/service"
)

type AuthorHandler struct {
	svc *service.AuthorService
}

func NewAuthorHandler(svc *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

// GetStats handles GET /api/authors/:authorId/stats
func (h *AuthorHandler) GetStats(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateEntityID(c.Params("authorId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	stats, err := h.svc.Stats(c.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Author not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup author stats")
	}

	return c.JSON(stats)
}
