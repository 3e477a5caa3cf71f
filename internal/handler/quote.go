package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/asozialesnetzwerk/zitate-go/internal/middleware"
	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
)

type QuoteHandler struct {
	repo *repository.QuoteRepo
}

func NewQuoteHandler(repo *repository.QuoteRepo) *QuoteHandler {
	return &QuoteHandler{repo: repo}
}

// GetQuote handles GET /api/zitate/info/z/:quoteId
func (h *QuoteHandler) GetQuote(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateEntityID(c.Params("quoteId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	quote, err := h.repo.GetQuote(c.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Quote not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup quote")
	}

	realAuthor, err := h.repo.GetAuthor(c.Context(), quote.RealAuthorID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup quote")
	}

	return c.JSON(model.QuoteResponse{
		ID:         quote.ID,
		Text:       quote.Text,
		RealAuthor: *realAuthor,
	})
}

// GetAuthor handles GET /api/zitate/info/a/:authorId
func (h *QuoteHandler) GetAuthor(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateEntityID(c.Params("authorId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ID", errMsg)
	}

	author, err := h.repo.GetAuthor(c.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Author not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup author")
	}

	return c.JSON(model.AuthorResponse{ID: author.ID, Name: author.Name})
}
