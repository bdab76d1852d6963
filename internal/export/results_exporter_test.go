package export

import (
	"testing"
	"time"

	"github.com/portal-provas/exam-service/internal/models"
)

func TestResultsWorkbook(t *testing.T) {
	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	submitted := started.Add(25 * time.Minute)

	exam := &models.Exam{ID: 1, Title: "Matemática Básica"}
	results := []models.ResultWithAttempt{
		{
			Result: models.Result{AttemptID: 1, Score: 10.0 / 3.0, TotalQuestions: 3, CorrectCount: 1},
			Attempt: models.Attempt{
				ID: 1, ExamID: 1, UserID: 1,
				StartedAt: started, SubmittedAt: &submitted,
				Status: models.AttemptSubmitted,
			},
			StudentName: "Aluno Teste",
		},
	}

	f, err := ResultsWorkbook(exam, results)
	if err != nil {
		t.Fatalf("ResultsWorkbook: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue(resultsSheet, "A1")
	if err != nil {
		t.Fatal(err)
	}
	if title != "Matemática Básica" {
		t.Errorf("title cell = %q", title)
	}

	name, err := f.GetCellValue(resultsSheet, "B3")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Aluno Teste" {
		t.Errorf("student cell = %q", name)
	}

	score, err := f.GetCellValue(resultsSheet, "G3")
	if err != nil {
		t.Fatal(err)
	}
	if score != "3.3" {
		t.Errorf("score cell = %q, want one-decimal display", score)
	}
}

func TestResultsWorkbook_EmptyResults(t *testing.T) {
	exam := &models.Exam{ID: 2, Title: "História do Brasil"}

	f, err := ResultsWorkbook(exam, nil)
	if err != nil {
		t.Fatalf("ResultsWorkbook: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue(resultsSheet, "A2")
	if err != nil {
		t.Fatal(err)
	}
	if header != "Tentativa" {
		t.Errorf("header cell = %q", header)
	}
}
