package handler

import (
	"quizent/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz catalog HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GetQuizzes godoc
// @Summary List available quizzes
// @Description Returns the quiz catalog with topic and question counts
// @Tags quizzes
// @Accept json
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) GetQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.service.GetQuizzes(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GetQuizQuestions godoc
// @Summary List questions of a quiz
// @Description Returns the question pool of a quiz without correct answers
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {array} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/questions [get]
func (h *QuizHandler) GetQuizQuestions(c *fiber.Ctx) error {
	questions, err := h.service.GetQuizQuestions(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(questions)
}
