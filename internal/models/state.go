package models

// State is the full persisted snapshot: catalog, attempts, results and the
// monotonic ID counters. The JSON field names are part of the on-disk
// contract and must not change while compatibility with prior snapshots
// matters.
type State struct {
	Exams     []Exam     `json:"exams"`
	Questions []Question `json:"questions"`
	Attempts  []Attempt  `json:"attempts"`
	Results   []Result   `json:"results"`

	NextExamID     int64 `json:"nextExamId"`
	NextQuestionID int64 `json:"nextQuestionId"`
	NextOptionID   int64 `json:"nextOptionId"`
	NextAttemptID  int64 `json:"nextAttemptId"`
}

// Clone deep-copies the snapshot so stores can hand out state without
// aliasing their internal copy.
func (s *State) Clone() *State {
	c := &State{
		Exams:          append([]Exam(nil), s.Exams...),
		Questions:      make([]Question, len(s.Questions)),
		Attempts:       make([]Attempt, len(s.Attempts)),
		Results:        append([]Result(nil), s.Results...),
		NextExamID:     s.NextExamID,
		NextQuestionID: s.NextQuestionID,
		NextOptionID:   s.NextOptionID,
		NextAttemptID:  s.NextAttemptID,
	}
	for i, q := range s.Questions {
		q.Options = append([]Option(nil), q.Options...)
		c.Questions[i] = q
	}
	for i, a := range s.Attempts {
		if a.SubmittedAt != nil {
			t := *a.SubmittedAt
			a.SubmittedAt = &t
		}
		c.Attempts[i] = a
	}
	return c
}

// FindExam returns the exam with the given id, or nil.
func (s *State) FindExam(id int64) *Exam {
	for i := range s.Exams {
		if s.Exams[i].ID == id {
			return &s.Exams[i]
		}
	}
	return nil
}

// FindAttempt returns the attempt with the given id, or nil.
func (s *State) FindAttempt(id int64) *Attempt {
	for i := range s.Attempts {
		if s.Attempts[i].ID == id {
			return &s.Attempts[i]
		}
	}
	return nil
}

// QuestionsForExam returns the exam's questions in snapshot order.
func (s *State) QuestionsForExam(examID int64) []Question {
	var qs []Question
	for _, q := range s.Questions {
		if q.ExamID == examID {
			qs = append(qs, q)
		}
	}
	return qs
}
