package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portal-provas/exam-service/internal/models"
	"github.com/portal-provas/exam-service/internal/services"
	"github.com/portal-provas/exam-service/internal/utils"
)

type AttemptHandler struct {
	BaseHandler
	attempt services.AttemptService
}

func NewAttemptHandler(attempt services.AttemptService, logger utils.Logger) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler: NewBaseHandler(logger),
		attempt:     attempt,
	}
}

// StartAttempt creates an attempt for the caller, or returns the existing
// in_progress one (idempotent start).
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	h.LogRequest(c, "starting attempt", "exam_id", examID, "user_id", caller.UserID)
	attempt, err := h.attempt.Start(c.Request.Context(), examID, caller.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, attempt)
}

func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	attemptID := h.parseIDParam(c, "id")
	if attemptID == 0 {
		return
	}

	var req services.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badPayload(err))
		return
	}

	h.LogRequest(c, "submitting attempt", "attempt_id", attemptID, "answers", len(req.Answers))
	result, err := h.attempt.Submit(c.Request.Context(), attemptID, req.Answers)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

// ExpireAttempt is invoked by the client timer when the attempt's time runs
// out. It submits whatever the request carries (usually nothing) through the
// same one-shot path as a manual submit.
func (h *AttemptHandler) ExpireAttempt(c *gin.Context) {
	attemptID := h.parseIDParam(c, "id")
	if attemptID == 0 {
		return
	}

	h.LogRequest(c, "expiring attempt", "attempt_id", attemptID)
	result, err := h.attempt.HandleExpiry(c.Request.Context(), attemptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	attemptID := h.parseIDParam(c, "id")
	if attemptID == 0 {
		return
	}

	attempt, err := h.attempt.GetAttempt(c.Request.Context(), attemptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, attempt)
}

func (h *AttemptHandler) GetResult(c *gin.Context) {
	attemptID := h.parseIDParam(c, "id")
	if attemptID == 0 {
		return
	}

	result, err := h.attempt.GetResult(c.Request.Context(), attemptID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h *AttemptHandler) ListMyAttempts(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	attempts, err := h.attempt.ListMyAttempts(c.Request.Context(), caller.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, attempts)
}

func badPayload(err error) models.ErrorResponse {
	return models.ErrorResponse{
		Error:   "bad_request",
		Message: "invalid request payload",
		Details: err.Error(),
	}
}
