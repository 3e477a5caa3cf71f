package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/asozialesnetzwerk/zitate-go/internal/middleware"
	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
)

type StatsHandler struct {
	repo *repository.QuoteRepo
}

func NewStatsHandler(repo *repository.QuoteRepo) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.repo.GetStats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}
	return c.JSON(stats)
}
