package store

import (
	"time"

	"github.com/portal-provas/exam-service/internal/models"
)

const seedProfessorID = 2

// SeedState is the fixture catalog used when no snapshot has been persisted:
// two exams with three questions between them, no attempts or results, and
// counters initialized above the seed's highest ids.
func SeedState() *models.State {
	now := time.Now().UTC()
	return &models.State{
		NextExamID:     3,
		NextQuestionID: 7,
		NextOptionID:   15,
		NextAttemptID:  1,
		Exams: []models.Exam{
			{
				ID:          1,
				Title:       "Matemática Básica",
				Description: "Prova de operações fundamentais",
				Duration:    30,
				CreatedAt:   now,
				UserID:      seedProfessorID,
			},
			{
				ID:          2,
				Title:       "História do Brasil",
				Description: "Independência e República",
				Duration:    45,
				CreatedAt:   now,
				UserID:      seedProfessorID,
			},
		},
		Questions: []models.Question{
			{
				ID:     1,
				ExamID: 1,
				Text:   "Quanto é 2 + 2?",
				Order:  1,
				Options: []models.Option{
					{ID: 1, Text: "3", IsCorrect: false},
					{ID: 2, Text: "4", IsCorrect: true},
					{ID: 3, Text: "5", IsCorrect: false},
				},
			},
			{
				ID:     2,
				ExamID: 1,
				Text:   "Quanto é 5 × 3?",
				Order:  2,
				Options: []models.Option{
					{ID: 4, Text: "15", IsCorrect: true},
					{ID: 5, Text: "8", IsCorrect: false},
					{ID: 6, Text: "12", IsCorrect: false},
				},
			},
			{
				ID:     3,
				ExamID: 2,
				Text:   "Em que ano o Brasil declarou independência?",
				Order:  1,
				Options: []models.Option{
					{ID: 7, Text: "1820", IsCorrect: false},
					{ID: 8, Text: "1822", IsCorrect: true},
					{ID: 9, Text: "1830", IsCorrect: false},
				},
			},
		},
		Attempts: []models.Attempt{},
		Results:  []models.Result{},
	}
}

// SeedUsers is the fixture user directory matching the seed catalog. User
// accounts are owned by the identity collaborator; this list only backs
// display-name lookups for results.
func SeedUsers() []models.User {
	return []models.User{
		{ID: 1, Name: "Aluno Teste", Email: "aluno@teste.com", Role: models.RoleStudent},
		{ID: 2, Name: "Professor Teste", Email: "professor@teste.com", Role: models.RoleProfessor},
		{ID: 3, Name: "Admin Teste", Email: "admin@teste.com", Role: models.RoleAdmin},
		{ID: 4, Name: "Maria Silva", Email: "maria@teste.com", Role: models.RoleStudent},
		{ID: 5, Name: "João Santos", Email: "joao@teste.com", Role: models.RoleProfessor},
	}
}
