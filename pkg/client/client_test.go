package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/portal-provas/exam-service/internal/events"
	"github.com/portal-provas/exam-service/internal/handlers"
	"github.com/portal-provas/exam-service/internal/models"
	"github.com/portal-provas/exam-service/internal/services"
	"github.com/portal-provas/exam-service/internal/store"
	"github.com/portal-provas/exam-service/internal/utils"
	"github.com/portal-provas/exam-service/internal/validator"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := services.NewServiceManager(services.ServiceManagerConfig{
		Store:     store.NewMemoryStore(),
		Logger:    logger,
		Validator: validator.New(),
		Publisher: events.NewMockEventPublisher(logger),
	})

	router := gin.New()
	handlers.NewHandlerManager(manager, utils.NewSlogLogger(logger)).SetupRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestClient_AttemptLifecycle(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	student := New(server.URL, models.Identity{UserID: 1, Role: models.RoleStudent})

	exams, err := student.ListExams(ctx, models.Identity{})
	if err != nil {
		t.Fatalf("ListExams: %v", err)
	}
	if len(exams) != 2 {
		t.Fatalf("expected 2 seed exams, got %d", len(exams))
	}

	attempt, err := student.Start(ctx, exams[0].ID, 0)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	result, err := student.Submit(ctx, attempt.ID, []models.Answer{{QuestionID: 1, OptionID: 2}})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.CorrectCount != 1 || result.TotalQuestions != 2 {
		t.Errorf("result = %+v", result)
	}

	// Conflict surfaces as the shared sentinel.
	if _, err := student.Submit(ctx, attempt.ID, nil); !errors.Is(err, services.ErrAttemptAlreadySubmitted) {
		t.Errorf("double submit err = %v, want ErrAttemptAlreadySubmitted", err)
	}

	got, err := student.GetAttempt(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("GetAttempt: %v", err)
	}
	if got.Status != models.AttemptSubmitted {
		t.Errorf("status = %s", got.Status)
	}
}

func TestClient_CatalogRoundTrip(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	author := New(server.URL, models.Identity{UserID: 2, Role: models.RoleProfessor})

	exam, err := author.CreateExam(ctx, &services.CreateExamRequest{Title: "Redes", Duration: 60}, models.Identity{})
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}

	question, err := author.CreateQuestion(ctx, exam.ID, &services.CreateQuestionRequest{
		Text: "Qual porta usa HTTP?",
		Options: []validator.OptionInput{
			{Text: "80", IsCorrect: true},
			{Text: "22", IsCorrect: false},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	detail, err := author.GetExamWithQuestions(ctx, exam.ID)
	if err != nil {
		t.Fatalf("GetExamWithQuestions: %v", err)
	}
	if len(detail.Questions) != 1 || detail.Questions[0].ID != question.ID {
		t.Errorf("detail questions = %+v", detail.Questions)
	}

	if err := author.DeleteExam(ctx, exam.ID); err != nil {
		t.Fatalf("DeleteExam: %v", err)
	}
	if _, err := author.GetExamWithQuestions(ctx, exam.ID); !errors.Is(err, services.ErrExamNotFound) {
		t.Errorf("deleted exam err = %v, want ErrExamNotFound", err)
	}
}

func TestClient_NotFoundSentinels(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	author := New(server.URL, models.Identity{UserID: 2, Role: models.RoleProfessor})

	if _, err := author.ListResultsForExam(ctx, 999); !errors.Is(err, services.ErrExamNotFound) {
		t.Errorf("results for unknown exam err = %v, want ErrExamNotFound", err)
	}
	if _, err := author.GetResult(ctx, 999); !errors.Is(err, services.ErrResultNotFound) {
		t.Errorf("unknown result err = %v, want ErrResultNotFound", err)
	}
	if _, err := author.GetAttempt(ctx, 999); !errors.Is(err, services.ErrAttemptNotFound) {
		t.Errorf("unknown attempt err = %v, want ErrAttemptNotFound", err)
	}
	text := "q"
	if _, err := author.UpdateQuestion(ctx, 1, 999, &services.UpdateQuestionRequest{Text: &text}); !errors.Is(err, services.ErrQuestionNotFound) {
		t.Errorf("unknown question err = %v, want ErrQuestionNotFound", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(broken.Close)

	c := New(broken.URL, models.Identity{UserID: 1, Role: models.RoleStudent})
	_, err := c.ListExams(context.Background(), models.Identity{})
	if !errors.Is(err, services.ErrTransport) {
		t.Errorf("err = %v, want ErrTransport", err)
	}
}
