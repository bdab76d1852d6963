package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/portal-provas/exam-service/internal/models"
	"github.com/portal-provas/exam-service/internal/services"
	"github.com/portal-provas/exam-service/internal/utils"
	"github.com/portal-provas/exam-service/internal/validator"
)

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "request_id", c.GetString("request_id"))
	h.logger.Info(msg, args...)
}

// parseIDParam reads a positive integer path parameter, responding 400 and
// returning 0 on failure.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid " + name + " parameter",
		})
		return 0
	}
	return id
}

// identity pulls the trusted caller identity attached by the identity
// middleware, responding 401 when absent.
func (h *BaseHandler) identity(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(identityContextKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "unauthorized",
			Message: "missing caller identity",
		})
		return models.Identity{}, false
	}
	return v.(models.Identity), true
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	var perm *services.PermissionError

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "request validation failed",
			Details: verrs,
		})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrAttemptAlreadySubmitted):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "conflict",
			Message: err.Error(),
		})
	case errors.As(err, &perm):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "forbidden",
			Message: perm.Error(),
		})
	default:
		h.logger.Error("internal error", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "internal server error",
		})
	}
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.SuccessResponse{Data: data})
}
