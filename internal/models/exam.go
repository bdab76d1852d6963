package models

import "time"

// Exam is the authored catalog entry a student takes an attempt against.
// Duration is in minutes; non-positive durations are normalized on write.
type Exam struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description"`
	Duration    int       `json:"duration_minutes"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      int64     `json:"user_id"`
}

// Option is one answer choice. Option ids are unique across the whole
// catalog, not per question.
type Option struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question belongs to exactly one exam and carries exactly one correct
// option. Order is 1-based within the exam and may have gaps after deletes.
type Question struct {
	ID      int64    `json:"id"`
	ExamID  int64    `json:"exam_id"`
	Text    string   `json:"text"`
	Order   int      `json:"order"`
	Options []Option `json:"options"`
}

// CorrectOption returns the question's correct option, or nil if the
// question is malformed.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// ExamWithQuestions is the full detail view served to takers and authors.
type ExamWithQuestions struct {
	Exam
	Questions []Question `json:"questions"`
}
