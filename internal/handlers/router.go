package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portal-provas/exam-service/internal/models"
	"github.com/portal-provas/exam-service/internal/services"
	"github.com/portal-provas/exam-service/internal/utils"
)

type HandlerManager struct {
	examHandler    *ExamHandler
	attemptHandler *AttemptHandler
}

func NewHandlerManager(manager *services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		examHandler:    NewExamHandler(manager.Catalog(), manager.Attempt(), logger),
		attemptHandler: NewAttemptHandler(manager.Attempt(), logger),
	}
}

// SetupRoutes registers the API surface. Authoring routes are limited to
// professors and admins; everything else only needs an identity.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authorOnly := RequireRoleMiddleware(models.RoleProfessor, models.RoleAdmin)

	api := router.Group("/api")
	api.Use(IdentityMiddleware())
	{
		exams := api.Group("/exams")
		{
			exams.GET("", hm.examHandler.ListExams)
			exams.POST("", authorOnly, hm.examHandler.CreateExam)
			exams.GET("/:id", hm.examHandler.GetExam)
			exams.PUT("/:id", authorOnly, hm.examHandler.UpdateExam)
			exams.DELETE("/:id", authorOnly, hm.examHandler.DeleteExam)

			exams.POST("/:id/questions", authorOnly, hm.examHandler.CreateQuestion)
			exams.PUT("/:id/questions/:question_id", authorOnly, hm.examHandler.UpdateQuestion)
			exams.DELETE("/:id/questions/:question_id", authorOnly, hm.examHandler.DeleteQuestion)

			exams.POST("/:id/attempts", hm.attemptHandler.StartAttempt)
			exams.GET("/:id/results", authorOnly, hm.examHandler.ListResults)
			exams.GET("/:id/results/export", authorOnly, hm.examHandler.ExportResults)
		}

		attempts := api.Group("/attempts")
		{
			attempts.GET("", hm.attemptHandler.ListMyAttempts)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.POST("/:id/submit", hm.attemptHandler.SubmitAttempt)
			attempts.POST("/:id/expire", hm.attemptHandler.ExpireAttempt)
			attempts.GET("/:id/result", hm.attemptHandler.GetResult)
		}
	}
}
