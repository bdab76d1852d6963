package services

import (
	"math"
	"testing"

	"github.com/portal-provas/exam-service/internal/models"
)

func twoOptionQuestion(id, examID, correctOpt, wrongOpt int64) models.Question {
	return models.Question{
		ID:     id,
		ExamID: examID,
		Text:   "q",
		Options: []models.Option{
			{ID: correctOpt, Text: "right", IsCorrect: true},
			{ID: wrongOpt, Text: "wrong", IsCorrect: false},
		},
	}
}

func TestScore(t *testing.T) {
	q1 := twoOptionQuestion(1, 1, 10, 11)
	q2 := twoOptionQuestion(2, 1, 20, 21)
	q3 := twoOptionQuestion(3, 1, 30, 31)

	tests := []struct {
		name        string
		questions   []models.Question
		answers     []models.Answer
		wantCorrect int
		wantTotal   int
		wantScore   float64
	}{
		{
			name:      "empty question set scores zero",
			questions: nil,
			answers:   []models.Answer{{QuestionID: 1, OptionID: 10}},
			wantScore: 0,
		},
		{
			name:        "one of two correct",
			questions:   []models.Question{q1, q2},
			answers:     []models.Answer{{QuestionID: 1, OptionID: 10}, {QuestionID: 2, OptionID: 21}},
			wantCorrect: 1,
			wantTotal:   2,
			wantScore:   5.0,
		},
		{
			name:        "all correct",
			questions:   []models.Question{q1, q2},
			answers:     []models.Answer{{QuestionID: 1, OptionID: 10}, {QuestionID: 2, OptionID: 20}},
			wantCorrect: 2,
			wantTotal:   2,
			wantScore:   10,
		},
		{
			name:        "unanswered questions count against the denominator",
			questions:   []models.Question{q1, q2, q3},
			answers:     []models.Answer{{QuestionID: 1, OptionID: 10}},
			wantCorrect: 1,
			wantTotal:   3,
			wantScore:   10.0 / 3.0,
		},
		{
			name:        "unknown question id is ignored",
			questions:   []models.Question{q1},
			answers:     []models.Answer{{QuestionID: 99, OptionID: 10}},
			wantCorrect: 0,
			wantTotal:   1,
			wantScore:   0,
		},
		{
			name:        "unknown option id is ignored",
			questions:   []models.Question{q1},
			answers:     []models.Answer{{QuestionID: 1, OptionID: 999}},
			wantCorrect: 0,
			wantTotal:   1,
			wantScore:   0,
		},
		{
			name:        "duplicate answers for one question count once",
			questions:   []models.Question{q1},
			answers:     []models.Answer{{QuestionID: 1, OptionID: 10}, {QuestionID: 1, OptionID: 10}},
			wantCorrect: 1,
			wantTotal:   1,
			wantScore:   10,
		},
		{
			name:        "last duplicate answer wins",
			questions:   []models.Question{q1},
			answers:     []models.Answer{{QuestionID: 1, OptionID: 10}, {QuestionID: 1, OptionID: 11}},
			wantCorrect: 0,
			wantTotal:   1,
			wantScore:   0,
		},
		{
			name:        "option id from another question does not count",
			questions:   []models.Question{q1, q2},
			answers:     []models.Answer{{QuestionID: 1, OptionID: 20}},
			wantCorrect: 0,
			wantTotal:   2,
			wantScore:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.questions, tt.answers)
			if got.CorrectCount != tt.wantCorrect {
				t.Errorf("correct_count = %d, want %d", got.CorrectCount, tt.wantCorrect)
			}
			if got.TotalQuestions != tt.wantTotal {
				t.Errorf("total_questions = %d, want %d", got.TotalQuestions, tt.wantTotal)
			}
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("score = %v, want %v", got.Score, tt.wantScore)
			}
		})
	}
}

func TestScore_Bounds(t *testing.T) {
	questions := []models.Question{
		twoOptionQuestion(1, 1, 10, 11),
		twoOptionQuestion(2, 1, 20, 21),
	}
	answerSets := [][]models.Answer{
		nil,
		{{QuestionID: 1, OptionID: 10}},
		{{QuestionID: 1, OptionID: 10}, {QuestionID: 2, OptionID: 20}},
		{{QuestionID: 1, OptionID: 11}, {QuestionID: 2, OptionID: 21}},
		{{QuestionID: 5, OptionID: 5}, {QuestionID: 6, OptionID: 6}},
		{{QuestionID: 1, OptionID: 10}, {QuestionID: 1, OptionID: 10}, {QuestionID: 2, OptionID: 20}},
	}
	for _, answers := range answerSets {
		got := Score(questions, answers)
		if got.Score < 0 || got.Score > 10 {
			t.Errorf("score %v out of [0, 10] for answers %v", got.Score, answers)
		}
		if got.CorrectCount > got.TotalQuestions {
			t.Errorf("correct_count %d exceeds total %d for answers %v", got.CorrectCount, got.TotalQuestions, answers)
		}
	}
}

func TestScore_ReferentiallyTransparent(t *testing.T) {
	questions := []models.Question{twoOptionQuestion(1, 1, 10, 11)}
	answers := []models.Answer{{QuestionID: 1, OptionID: 10}}

	first := Score(questions, answers)
	second := Score(questions, answers)
	if first != second {
		t.Errorf("repeated scoring diverged: %+v vs %+v", first, second)
	}
}
