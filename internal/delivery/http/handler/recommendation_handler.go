package handler

import (
	"role-match/internal/delivery/http/dto"
	"role-match/internal/delivery/http/middleware"
	"role-match/internal/pkg/response"
	"role-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc       usecase.RecommendationUsecase
	defaultK int
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase, defaultK int) *RecommendationHandler {
	if defaultK <= 0 {
		defaultK = 5
	}
	return &RecommendationHandler{uc: uc, defaultK: defaultK}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/employees/:employee_id/recommendations", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	employeeID := c.Params("employee_id")

	limit, ok := parseQueryInt(c, "limit", h.defaultK)
	if !ok || limit < 1 || limit > usecase.MaxTopK {
		return middleware.NewAppError(fiber.StatusBadRequest, "limit must be between 1 and 50", nil, nil)
	}

	recs, err := h.uc.TopRecommendations(c.Context(), employeeID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationListResponse(employeeID, limit, recs))
}
