package routes

import "github.com/gofiber/fiber/v3"

func RegisterV1(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Recommendation != nil {
		h.Recommendation.RegisterRoutes(r)
	}
	if h.LearningPath != nil {
		h.LearningPath.RegisterRoutes(r)
	}
	if h.Pipeline != nil {
		h.Pipeline.RegisterRoutes(r, h.OperatorGuard)
	}
}
