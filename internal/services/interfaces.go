package services

import (
	"context"

	"github.com/portal-provas/exam-service/internal/models"
	"github.com/portal-provas/exam-service/internal/validator"
)

// ===== REQUEST DTOs =====

// DefaultExamDuration is applied when a create/update request carries a
// non-positive duration. The lenient coercion is deliberate and uniform:
// numeric inputs are normalized, never rejected; string inputs (titles,
// option texts) are validated strictly.
const DefaultExamDuration = 30

type CreateExamRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Duration    int    `json:"duration_minutes"`
}

type UpdateExamRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Duration    *int    `json:"duration_minutes"`
}

type CreateQuestionRequest struct {
	Text    string                  `json:"text"`
	Options []validator.OptionInput `json:"options"`
}

type UpdateQuestionRequest struct {
	Text *string `json:"text"`
	// Options replaces the full option list when present. Existing option ids
	// are reused positionally so already-recorded answers stay resolvable
	// where feasible; reordered sets lose that guarantee.
	Options []validator.OptionInput `json:"options"`
}

type SubmitAttemptRequest struct {
	Answers []models.Answer `json:"answers"`
}

// ===== SERVICE INTERFACES =====

// CatalogService is the catalog manager: CRUD over exams and their nested
// questions/options, ownership and ordering included.
type CatalogService interface {
	ListExams(ctx context.Context, caller models.Identity) ([]models.Exam, error)
	GetExamWithQuestions(ctx context.Context, examID int64) (*models.ExamWithQuestions, error)
	CreateExam(ctx context.Context, req *CreateExamRequest, caller models.Identity) (*models.Exam, error)
	UpdateExam(ctx context.Context, examID int64, req *UpdateExamRequest) (*models.Exam, error)
	DeleteExam(ctx context.Context, examID int64) error

	CreateQuestion(ctx context.Context, examID int64, req *CreateQuestionRequest) (*models.Question, error)
	UpdateQuestion(ctx context.Context, examID, questionID int64, req *UpdateQuestionRequest) (*models.Question, error)
	DeleteQuestion(ctx context.Context, examID, questionID int64) error
}

// AttemptService is the attempt manager: the sole writer of attempt state.
type AttemptService interface {
	Start(ctx context.Context, examID, userID int64) (*models.Attempt, error)
	Submit(ctx context.Context, attemptID int64, answers []models.Answer) (*models.Result, error)
	// HandleExpiry is the timer-driven submit entry point. It runs the same
	// one-shot submission as Submit; an attempt that was already submitted
	// manually yields the stored result, not an error.
	HandleExpiry(ctx context.Context, attemptID int64) (*models.Result, error)

	GetAttempt(ctx context.Context, attemptID int64) (*models.Attempt, error)
	GetResult(ctx context.Context, attemptID int64) (*models.Result, error)
	ListMyAttempts(ctx context.Context, userID int64) ([]models.AttemptWithExam, error)
	ListResultsForExam(ctx context.Context, examID int64) ([]models.ResultWithAttempt, error)
}

// UserDirectory resolves display names for results listings. User accounts
// themselves belong to the identity collaborator.
type UserDirectory interface {
	DisplayName(userID int64) string
}
