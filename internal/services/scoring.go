package services

import "github.com/portal-provas/exam-service/internal/models"

// Score grades a flat answer list against an exam's question set. It is a
// pure function: no store access, no clock, safe to call repeatedly with the
// same inputs (which is what makes re-grading tooling possible).
//
// An answer counts as correct iff its question is in the set and the chosen
// option exists on that question with the correct flag set. Answers
// referencing unknown questions or options are not errors; they simply score
// nothing. At most one answer counts per question: duplicates collapse to the
// last one, matching the one-choice-per-question submit form. Unanswered
// questions count toward the denominator but not the numerator. The score is
// correct/total on a 0-10 scale, 0 for an empty question set, kept at full
// float precision.
//
// The attempt id on the returned Result is zero; the attempt manager fills
// it in when persisting.
func Score(questions []models.Question, answers []models.Answer) models.Result {
	chosen := make(map[int64]int64, len(answers))
	for _, ans := range answers {
		chosen[ans.QuestionID] = ans.OptionID
	}

	correct := 0
	for i := range questions {
		optionID, ok := chosen[questions[i].ID]
		if !ok {
			continue
		}
		if co := questions[i].CorrectOption(); co != nil && co.ID == optionID {
			correct++
		}
	}

	total := len(questions)
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 10
	}

	return models.Result{
		Score:          score,
		TotalQuestions: total,
		CorrectCount:   correct,
	}
}
