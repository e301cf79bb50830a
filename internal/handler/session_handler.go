package handler

import (
	"quizent/internal/domain"
	"quizent/internal/dto"
	"quizent/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles adaptive quiz session HTTP requests
type SessionHandler struct {
	service service.SessionService
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
	}
}

// StartSession godoc
// @Summary Start an adaptive quiz session
// @Description Creates a session for a quiz and returns the first question at medium difficulty
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body dto.StartSessionRequest true "Session Request"
// @Success 201 {object} dto.StartSessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.StartSession(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer for the current question
// @Description Records the answer, adjusts difficulty and returns either the next question or the final result
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer Request"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answers [post]
func (h *SessionHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.SubmitAnswer(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
