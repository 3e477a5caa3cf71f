package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/asozialesnetzwerk/zitate-go/internal/middleware"
	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/internal/service"
	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

type PairHandler struct {
	svc        *service.WrongQuoteService
	selection  *service.SelectionService
	identity   *service.IdentityService
	cookieName string
}

func NewPairHandler(svc *service.WrongQuoteService, selection *service.SelectionService, identity *service.IdentityService, cookieName string) *PairHandler {
	return &PairHandler{svc: svc, selection: selection, identity: identity, cookieName: cookieName}
}

// Next handles GET /api/zitate/next?r=FILTER&current=KEY
func (h *PairHandler) Next(c fiber.Ctx) error {
	filter, err := model.ParseFilter(fiber.Query[string](c, "r"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FILTER",
			"Invalid rating filter. Must be one of: smart, w, n, rated, unrated, all")
	}

	var current *pairkey.Key
	if cur := fiber.Query[string](c, "current"); cur != "" {
		key, errMsg := middleware.ValidatePairKey(cur)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_KEY", errMsg)
		}
		current = &key
	}

	next, err := h.selection.Next(c.Context(), filter, current)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No quotes available")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to pick next pair")
	}

	Metrics.SelectionsTotal.WithLabelValues(string(filter)).Inc()

	return c.JSON(fiber.Map{
		"id":           next.String(),
		"href":         service.NextHref(next, filter),
		"ratingFilter": filter,
	})
}

// GetByID handles GET /api/zitate/:id?r=FILTER
func (h *PairHandler) GetByID(c fiber.Ctx) error {
	key, errMsg := middleware.ValidatePairKey(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_KEY", errMsg)
	}

	filter, err := model.ParseFilter(fiber.Query[string](c, "r"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FILTER",
			"Invalid rating filter. Must be one of: smart, w, n, rated, unrated, all")
	}

	identity := resolveIdentity(c, h.identity, h.cookieName)

	resp, err := h.svc.Resolve(c.Context(), key, identity, filter)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Pair not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve pair")
	}

	return c.JSON(resp)
}
