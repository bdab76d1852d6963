package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portal-provas/exam-service/internal/export"
	"github.com/portal-provas/exam-service/internal/services"
	"github.com/portal-provas/exam-service/internal/utils"
)

type ExamHandler struct {
	BaseHandler
	catalog services.CatalogService
	attempt services.AttemptService
}

func NewExamHandler(catalog services.CatalogService, attempt services.AttemptService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		catalog:     catalog,
		attempt:     attempt,
	}
}

func (h *ExamHandler) ListExams(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	exams, err := h.catalog.ListExams(c.Request.Context(), caller)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, exams)
}

func (h *ExamHandler) GetExam(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	exam, err := h.catalog.GetExamWithQuestions(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, exam)
}

func (h *ExamHandler) CreateExam(c *gin.Context) {
	caller, ok := h.identity(c)
	if !ok {
		return
	}

	var req services.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badPayload(err))
		return
	}

	h.LogRequest(c, "creating exam", "user_id", caller.UserID)
	exam, err := h.catalog.CreateExam(c.Request.Context(), &req, caller)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, exam)
}

func (h *ExamHandler) UpdateExam(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badPayload(err))
		return
	}

	exam, err := h.catalog.UpdateExam(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, exam)
}

func (h *ExamHandler) DeleteExam(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.catalog.DeleteExam(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExamHandler) CreateQuestion(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}

	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badPayload(err))
		return
	}

	question, err := h.catalog.CreateQuestion(c.Request.Context(), examID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, question)
}

func (h *ExamHandler) UpdateQuestion(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}
	questionID := h.parseIDParam(c, "question_id")
	if questionID == 0 {
		return
	}

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badPayload(err))
		return
	}

	question, err := h.catalog.UpdateQuestion(c.Request.Context(), examID, questionID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, question)
}

func (h *ExamHandler) DeleteQuestion(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}
	questionID := h.parseIDParam(c, "question_id")
	if questionID == 0 {
		return
	}

	if err := h.catalog.DeleteQuestion(c.Request.Context(), examID, questionID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExamHandler) ListResults(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}

	results, err := h.attempt.ListResultsForExam(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, results)
}

// ExportResults streams the exam's results as an xlsx workbook.
func (h *ExamHandler) ExportResults(c *gin.Context) {
	examID := h.parseIDParam(c, "id")
	if examID == 0 {
		return
	}

	ctx := c.Request.Context()
	exam, err := h.catalog.GetExamWithQuestions(ctx, examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	results, err := h.attempt.ListResultsForExam(ctx, examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	workbook, err := export.ResultsWorkbook(&exam.Exam, results)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer workbook.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="resultados-%d.xlsx"`, examID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Error("failed to stream results export", "exam_id", examID, "error", err)
	}
}
