// Package export renders author-facing reports. Only already-computed data
// goes in; nothing here re-grades.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/portal-provas/exam-service/internal/models"
)

const resultsSheet = "Resultados"

var resultsHeader = []string{"Tentativa", "Aluno", "Iniciada em", "Enviada em", "Acertos", "Questões", "Nota"}

// ResultsWorkbook builds an xlsx workbook with one row per submitted attempt
// of the exam. The caller owns the returned file and should Close it after
// writing it out.
func ResultsWorkbook(exam *models.Exam, results []models.ResultWithAttempt) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetCellValue(resultsSheet, "A1", exam.Title); err != nil {
		return nil, fmt.Errorf("failed to write title: %w", err)
	}

	for col, name := range resultsHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(resultsSheet, cell, name); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, r := range results {
		row := i + 3
		submittedAt := ""
		if r.Attempt.SubmittedAt != nil {
			submittedAt = r.Attempt.SubmittedAt.Format("2006-01-02 15:04:05")
		}
		values := []interface{}{
			r.AttemptID,
			r.StudentName,
			r.Attempt.StartedAt.Format("2006-01-02 15:04:05"),
			submittedAt,
			r.CorrectCount,
			r.TotalQuestions,
			// Display precision is one decimal; the stored score keeps more.
			fmt.Sprintf("%.1f", r.Score),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(resultsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	return f, nil
}
