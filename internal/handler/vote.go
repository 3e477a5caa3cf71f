package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/asozialesnetzwerk/zitate-go/internal/middleware"
	"github.com/asozialesnetzwerk/zitate-go/internal/model"
	"github.com/asozialesnetzwerk/zitate-go/internal/service"
)

type VoteHandler struct {
	svc        *service.VoteService
	identity   *service.IdentityService
	cookieName string
}

func NewVoteHandler(svc *service.VoteService, identity *service.IdentityService, cookieName string) *VoteHandler {
	return &VoteHandler{svc: svc, identity: identity, cookieName: cookieName}
}

// Submit handles POST /api/votes. The template layer submits a form with the
// pair id, the vote value and the active rating filter; browsers get a 303
// to the next pair, API clients the JSON response.
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	key, errMsg := middleware.ValidatePairKey(req.ID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_KEY", errMsg)
	}

	value, errMsg := middleware.ValidateVoteValue(req.Vote)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VALUE", errMsg)
	}

	filter, err := model.ParseFilter(req.R)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FILTER",
			"Invalid rating filter. Must be one of: smart, w, n, rated, unrated, all")
	}

	identity := resolveIdentity(c, h.identity, h.cookieName)

	resp, err := h.svc.Submit(c.Context(), key, identity, value, filter)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidValue):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VALUE", "vote must be -1, 0 or 1")
		case errors.Is(err, model.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Pair not found")
		case errors.Is(err, model.ErrStorageUnavailable):
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE",
				"Vote did not register, please retry")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit vote")
	}

	Metrics.VotesTotal.WithLabelValues(voteLabel(resp.YourVote)).Inc()

	// Form posts from the page refresh to the freshly selected pair.
	if c.Accepts("json", "html") == "html" {
		return c.Redirect().Status(fiber.StatusSeeOther).To(resp.NextHref)
	}
	return c.JSON(resp)
}

// Retract handles DELETE /api/votes: an explicit un-vote (stores value 0).
func (h *VoteHandler) Retract(c fiber.Ctx) error {
	var req model.VoteRetractRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	key, errMsg := middleware.ValidatePairKey(req.ID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_KEY", errMsg)
	}

	identity := resolveIdentity(c, h.identity, h.cookieName)

	snapshot, err := h.svc.Retract(c.Context(), key, identity)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Pair not found")
		case errors.Is(err, model.ErrStorageUnavailable):
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE",
				"Retraction did not register, please retry")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retract vote")
	}

	return c.JSON(fiber.Map{"success": true, "rating": snapshot})
}

func voteLabel(value int) string {
	switch value {
	case 1:
		return "up"
	case -1:
		return "down"
	}
	return "retract"
}
