package services

import (
	"context"
	"errors"
	"testing"

	"github.com/portal-provas/exam-service/internal/models"
	"github.com/portal-provas/exam-service/internal/validator"
)

func professorIdentity() models.Identity {
	return models.Identity{UserID: testAuthorID, Role: models.RoleProfessor}
}

func studentIdentity() models.Identity {
	return models.Identity{UserID: testStudentID, Role: models.RoleStudent}
}

func TestCatalogService_ListExamsByAudience(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	// Another professor's exam must not show up for the seed author.
	other := models.Identity{UserID: 5, Role: models.RoleProfessor}
	if _, err := manager.Catalog().CreateExam(ctx, &CreateExamRequest{Title: "Geografia", Duration: 20}, other); err != nil {
		t.Fatal(err)
	}

	t.Run("professor sees only owned exams", func(t *testing.T) {
		exams, err := manager.Catalog().ListExams(ctx, professorIdentity())
		if err != nil {
			t.Fatal(err)
		}
		if len(exams) != 2 {
			t.Fatalf("expected the 2 seed exams, got %d", len(exams))
		}
		for _, e := range exams {
			if e.UserID != testAuthorID {
				t.Errorf("exam %d owned by %d leaked into author listing", e.ID, e.UserID)
			}
		}
	})

	t.Run("student sees all exams", func(t *testing.T) {
		exams, err := manager.Catalog().ListExams(ctx, studentIdentity())
		if err != nil {
			t.Fatal(err)
		}
		if len(exams) != 3 {
			t.Fatalf("expected full catalog of 3, got %d", len(exams))
		}
	})
}

func TestCatalogService_CreateExamRoundTrip(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	created, err := manager.Catalog().CreateExam(ctx, &CreateExamRequest{
		Title:       "Física",
		Description: "Cinemática",
		Duration:    50,
	}, professorIdentity())
	if err != nil {
		t.Fatalf("CreateExam: %v", err)
	}

	got, err := manager.Catalog().GetExamWithQuestions(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetExamWithQuestions: %v", err)
	}
	if got.Title != "Física" || got.Description != "Cinemática" || got.Duration != 50 {
		t.Errorf("round-trip mismatch: %+v", got.Exam)
	}
	if len(got.Questions) != 0 {
		t.Errorf("new exam should have no questions, got %d", len(got.Questions))
	}
	if got.UserID != testAuthorID {
		t.Errorf("exam bound to %d, want caller %d", got.UserID, testAuthorID)
	}
}

func TestCatalogService_CreateExamValidation(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := manager.Catalog().CreateExam(ctx, &CreateExamRequest{Title: ""}, professorIdentity())
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("err = %v, want ValidationErrors", err)
		}
	})

	t.Run("non-positive duration coerced to default", func(t *testing.T) {
		created, err := manager.Catalog().CreateExam(ctx, &CreateExamRequest{Title: "Química", Duration: -5}, professorIdentity())
		if err != nil {
			t.Fatal(err)
		}
		if created.Duration != DefaultExamDuration {
			t.Errorf("duration = %d, want default %d", created.Duration, DefaultExamDuration)
		}
	})
}

func TestCatalogService_UpdateExam(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	title := "Matemática Avançada"
	updated, err := manager.Catalog().UpdateExam(ctx, 1, &UpdateExamRequest{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != title {
		t.Errorf("title = %q", updated.Title)
	}
	// Untouched fields survive a partial update.
	if updated.Duration != 30 || updated.Description == "" {
		t.Errorf("partial update clobbered fields: %+v", updated)
	}

	_, err = manager.Catalog().UpdateExam(ctx, 999, &UpdateExamRequest{Title: &title})
	if !errors.Is(err, ErrExamNotFound) {
		t.Errorf("unknown exam err = %v, want ErrExamNotFound", err)
	}
}

func TestCatalogService_DeleteExamCascades(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	if err := manager.Catalog().DeleteExam(ctx, 1); err != nil {
		t.Fatalf("DeleteExam: %v", err)
	}

	if _, err := manager.Catalog().GetExamWithQuestions(ctx, 1); !errors.Is(err, ErrExamNotFound) {
		t.Errorf("deleted exam still resolvable: %v", err)
	}

	// Sibling exam and its questions are unaffected.
	sibling, err := manager.Catalog().GetExamWithQuestions(ctx, 2)
	if err != nil {
		t.Fatalf("sibling exam: %v", err)
	}
	if len(sibling.Questions) != 1 {
		t.Errorf("sibling lost questions: %d", len(sibling.Questions))
	}
}

func TestCatalogService_CreateQuestion(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	question, err := manager.Catalog().CreateQuestion(ctx, 1, &CreateQuestionRequest{
		Text: "Quanto é 10 / 2?",
		Options: []validator.OptionInput{
			{Text: "5", IsCorrect: true},
			{Text: "2", IsCorrect: false},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	// Seed exam 1 already has orders 1 and 2.
	if question.Order != 3 {
		t.Errorf("order = %d, want appended at 3", question.Order)
	}
	if len(question.Options) != 2 {
		t.Fatalf("options = %d", len(question.Options))
	}
	if question.Options[0].ID == question.Options[1].ID {
		t.Error("options share an id")
	}

	t.Run("unknown exam", func(t *testing.T) {
		_, err := manager.Catalog().CreateQuestion(ctx, 999, &CreateQuestionRequest{
			Text: "x",
			Options: []validator.OptionInput{
				{Text: "a", IsCorrect: true},
				{Text: "b", IsCorrect: false},
			},
		})
		if !errors.Is(err, ErrExamNotFound) {
			t.Errorf("err = %v, want ErrExamNotFound", err)
		}
	})
}

func TestCatalogService_CreateQuestionValidationLeavesStoreUnchanged(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	before, err := manager.Catalog().GetExamWithQuestions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		req  CreateQuestionRequest
	}{
		{
			name: "no option marked correct",
			req: CreateQuestionRequest{
				Text: "q",
				Options: []validator.OptionInput{
					{Text: "a", IsCorrect: false},
					{Text: "b", IsCorrect: false},
				},
			},
		},
		{
			name: "two options marked correct",
			req: CreateQuestionRequest{
				Text: "q",
				Options: []validator.OptionInput{
					{Text: "a", IsCorrect: true},
					{Text: "b", IsCorrect: true},
				},
			},
		},
		{
			name: "fewer than two options",
			req: CreateQuestionRequest{
				Text:    "q",
				Options: []validator.OptionInput{{Text: "a", IsCorrect: true}},
			},
		},
		{
			name: "empty option text",
			req: CreateQuestionRequest{
				Text: "q",
				Options: []validator.OptionInput{
					{Text: "", IsCorrect: true},
					{Text: "b", IsCorrect: false},
				},
			},
		},
		{
			name: "empty question text",
			req: CreateQuestionRequest{
				Text: "   ",
				Options: []validator.OptionInput{
					{Text: "a", IsCorrect: true},
					{Text: "b", IsCorrect: false},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Catalog().CreateQuestion(ctx, 1, &tt.req)
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("err = %v, want ValidationErrors", err)
			}
		})
	}

	after, err := manager.Catalog().GetExamWithQuestions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Questions) != len(before.Questions) {
		t.Errorf("rejected creates mutated the store: %d -> %d questions",
			len(before.Questions), len(after.Questions))
	}
}

func TestCatalogService_UpdateQuestionReusesOptionIDs(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	before, err := manager.Catalog().GetExamWithQuestions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	original := before.Questions[0]

	updated, err := manager.Catalog().UpdateQuestion(ctx, 1, original.ID, &UpdateQuestionRequest{
		Options: []validator.OptionInput{
			{Text: "three", IsCorrect: false},
			{Text: "four", IsCorrect: true},
			{Text: "five", IsCorrect: false},
			{Text: "six", IsCorrect: false},
		},
	})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if len(updated.Options) != 4 {
		t.Fatalf("options = %d", len(updated.Options))
	}
	for i := range original.Options {
		if updated.Options[i].ID != original.Options[i].ID {
			t.Errorf("option %d id changed: %d -> %d", i, original.Options[i].ID, updated.Options[i].ID)
		}
	}
	// The extra option got a fresh id.
	if updated.Options[3].ID <= original.Options[2].ID {
		t.Errorf("new option id %d not freshly allocated", updated.Options[3].ID)
	}
}

func TestCatalogService_DeleteQuestionKeepsOrderGaps(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	if err := manager.Catalog().DeleteQuestion(ctx, 1, 1); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}

	exam, err := manager.Catalog().GetExamWithQuestions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(exam.Questions) != 1 {
		t.Fatalf("questions = %d", len(exam.Questions))
	}
	// No renumbering: the survivor keeps order 2.
	if exam.Questions[0].Order != 2 {
		t.Errorf("order = %d, want 2 (gaps preserved)", exam.Questions[0].Order)
	}

	// Appending after the gap still goes to max+1.
	q, err := manager.Catalog().CreateQuestion(ctx, 1, &CreateQuestionRequest{
		Text: "nova",
		Options: []validator.OptionInput{
			{Text: "a", IsCorrect: true},
			{Text: "b", IsCorrect: false},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if q.Order != 3 {
		t.Errorf("appended order = %d, want 3", q.Order)
	}

	if err := manager.Catalog().DeleteQuestion(ctx, 1, 999); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("unknown question err = %v, want ErrQuestionNotFound", err)
	}
}

func TestCatalogService_QuestionsSortedByOrder(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	exam, err := manager.Catalog().GetExamWithQuestions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(exam.Questions); i++ {
		if exam.Questions[i-1].Order > exam.Questions[i].Order {
			t.Fatalf("questions out of order: %v", exam.Questions)
		}
	}
}
