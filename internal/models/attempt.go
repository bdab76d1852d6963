package models

import "time"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
)

// Attempt is one user's single pass at taking one exam. At most one attempt
// per (exam, user) pair is in_progress at a time; submitted is terminal.
type Attempt struct {
	ID          int64         `json:"id"`
	ExamID      int64         `json:"exam_id"`
	UserID      int64         `json:"user_id"`
	StartedAt   time.Time     `json:"started_at"`
	SubmittedAt *time.Time    `json:"submitted_at"`
	Status      AttemptStatus `json:"status"`
}

// Answer pairs a question with the chosen option. Answers are transient:
// they exist only in the submit payload and are never persisted on their own.
type Answer struct {
	QuestionID int64 `json:"question_id"`
	OptionID   int64 `json:"option_id"`
}

// Result is the graded outcome of a submitted attempt, created exactly once
// at submission time. Score is kept at full float precision on a 0-10 scale;
// display layers round to one decimal.
type Result struct {
	AttemptID      int64   `json:"attempt_id"`
	Score          float64 `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	CorrectCount   int     `json:"correct_count"`
}

// AttemptWithExam decorates an attempt with its exam title for listings.
// The title falls back to a placeholder when the exam has been deleted.
type AttemptWithExam struct {
	Attempt
	ExamTitle string `json:"exam_title"`
}

// ResultWithAttempt joins a result with its attempt and the submitter's
// display name, for the author-facing results view.
type ResultWithAttempt struct {
	Result
	Attempt     Attempt `json:"attempt"`
	StudentName string  `json:"student_name"`
}
