package handler

import (
	"errors"
	"strconv"

	"role-match/internal/delivery/http/middleware"
	"role-match/internal/pkg/response"
	"role-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	case errors.Is(err, usecase.ErrEmployeeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Employee not found", nil, err)
	case errors.Is(err, usecase.ErrLearningPathNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Learning path not found", nil, err)
	case errors.Is(err, usecase.ErrNoRuns):
		return middleware.NewAppError(fiber.StatusNotFound, "No pipeline runs yet", nil, err)
	case errors.Is(err, usecase.ErrPipelineBusy):
		return middleware.NewAppError(fiber.StatusConflict, "Pipeline run already in progress", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

// parseQueryInt returns defaultVal when key is absent and ok=false when the
// value is present but not an integer.
func parseQueryInt(c fiber.Ctx, key string, defaultVal int) (int, bool) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
