package handler

import (
	"role-match/internal/delivery/http/dto"
	"role-match/internal/pkg/response"
	"role-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PipelineHandler struct {
	uc usecase.PipelineUsecase
}

func NewPipelineHandler(uc usecase.PipelineUsecase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

// RegisterRoutes mounts the read endpoint on r and the trigger behind guard.
func (h *PipelineHandler) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	if r == nil {
		return
	}
	grp := r.Group("/pipeline/runs")
	grp.Get("/latest", h.Latest)
	if guard != nil {
		grp.Post("", guard, h.Trigger)
		return
	}
	grp.Post("", h.Trigger)
}

func (h *PipelineHandler) Latest(c fiber.Ctx) error {
	r, err := h.uc.Latest(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPipelineRunResponse(r))
}

func (h *PipelineHandler) Trigger(c fiber.Ctx) error {
	r, err := h.uc.Trigger(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	c.Set(fiber.HeaderLocation, "/api/v1/pipeline/runs/latest")
	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.NewPipelineRunResponse(r))
}
