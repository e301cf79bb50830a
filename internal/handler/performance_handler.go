package handler

import (
	"quizent/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PerformanceHandler handles performance and recommendation HTTP requests
type PerformanceHandler struct {
	performance    service.PerformanceService
	recommendation service.RecommendationService
}

// NewPerformanceHandler creates a new PerformanceHandler instance
func NewPerformanceHandler(performance service.PerformanceService, recommendation service.RecommendationService) *PerformanceHandler {
	return &PerformanceHandler{
		performance:    performance,
		recommendation: recommendation,
	}
}

// GetPerformance godoc
// @Summary Get a user's performance
// @Description Returns per-topic mastery, daily streak and attempt counts derived from history
// @Tags performance
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.PerformanceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /users/{id}/performance [get]
func (h *PerformanceHandler) GetPerformance(c *fiber.Ctx) error {
	resp, err := h.performance.GetPerformance(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetRecommendation godoc
// @Summary Get study recommendations for a user
// @Description Returns personalized study advice, generated from the user's performance snapshot
// @Tags performance
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /users/{id}/recommendations [get]
func (h *PerformanceHandler) GetRecommendation(c *fiber.Ctx) error {
	resp, err := h.recommendation.GetRecommendation(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
