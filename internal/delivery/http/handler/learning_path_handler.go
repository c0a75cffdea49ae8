package handler

import (
	"role-match/internal/delivery/http/dto"
	"role-match/internal/pkg/response"
	"role-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type LearningPathHandler struct {
	uc usecase.LearningPathUsecase
}

func NewLearningPathHandler(uc usecase.LearningPathUsecase) *LearningPathHandler {
	return &LearningPathHandler{uc: uc}
}

func (h *LearningPathHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/employees/:employee_id/learning-paths/:role_id", h.GetLearningPath)
}

func (h *LearningPathHandler) GetLearningPath(c fiber.Ctx) error {
	entry, err := h.uc.Get(c.Context(), c.Params("employee_id"), c.Params("role_id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewLearningPathResponse(entry))
}
