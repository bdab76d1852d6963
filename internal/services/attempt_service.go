package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/portal-provas/exam-service/internal/events"
	"github.com/portal-provas/exam-service/internal/models"
	"github.com/portal-provas/exam-service/internal/store"
)

// deletedExamTitle is the listing placeholder for attempts whose exam was
// deleted after the attempt was made.
const deletedExamTitle = "Prova"

type attemptService struct {
	store     store.Store
	logger    *slog.Logger
	publisher events.Publisher
	directory UserDirectory
	mu        *sync.Mutex
	now       func() time.Time
}

// NewAttemptService builds the attempt manager, the sole writer of attempt
// state. The mutex is shared with the catalog manager (same snapshot).
func NewAttemptService(st store.Store, logger *slog.Logger, publisher events.Publisher, directory UserDirectory, mu *sync.Mutex) AttemptService {
	return &attemptService{
		store:     st,
		logger:    logger,
		publisher: publisher,
		directory: directory,
		mu:        mu,
		now:       time.Now,
	}
}

func (s *attemptService) load(ctx context.Context) (*models.State, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotCorrupt) {
			s.logger.Warn("persisted snapshot corrupt, falling back to seed", "error", err)
			return state, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return state, nil
}

// Start creates an attempt, or returns the caller's existing in_progress
// attempt for the same exam unchanged. Re-requesting a start is idempotent.
func (s *attemptService) Start(ctx context.Context, examID, userID int64) (*models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if state.FindExam(examID) == nil {
		return nil, ErrExamNotFound
	}

	for i := range state.Attempts {
		a := &state.Attempts[i]
		if a.ExamID == examID && a.UserID == userID && a.Status == models.AttemptInProgress {
			s.logger.Info("resuming existing attempt", "attempt_id", a.ID, "exam_id", examID, "user_id", userID)
			existing := *a
			return &existing, nil
		}
	}

	attempt := models.Attempt{
		ID:        state.NextAttemptID,
		ExamID:    examID,
		UserID:    userID,
		StartedAt: s.now().UTC(),
		Status:    models.AttemptInProgress,
	}
	state.NextAttemptID++
	state.Attempts = append(state.Attempts, attempt)

	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Info("attempt started", "attempt_id", attempt.ID, "exam_id", examID, "user_id", userID)
	return &attempt, nil
}

// Submit grades the attempt against the exam's current question set and
// transitions it to submitted. Submission is strictly one-shot: a second
// call returns ErrAttemptAlreadySubmitted and leaves the stored result
// untouched.
func (s *attemptService) Submit(ctx context.Context, attemptID int64, answers []models.Answer) (*models.Result, error) {
	return s.submit(ctx, attemptID, answers, "")
}

// HandleExpiry is the entry point for the external timer event. Expiry runs
// the same submission path as a manual submit; if the attempt was already
// submitted the stored result is returned, since a timer firing after a
// manual submit is expected, not an error.
func (s *attemptService) HandleExpiry(ctx context.Context, attemptID int64) (*models.Result, error) {
	result, err := s.submit(ctx, attemptID, nil, events.AttemptEndReasonTimeout)
	if errors.Is(err, ErrAttemptAlreadySubmitted) {
		return s.GetResult(ctx, attemptID)
	}
	return result, err
}

func (s *attemptService) submit(ctx context.Context, attemptID int64, answers []models.Answer, endReason string) (*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	attempt := state.FindAttempt(attemptID)
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	if attempt.Status == models.AttemptSubmitted {
		return nil, ErrAttemptAlreadySubmitted
	}

	// Grade against the exam's question set as it exists right now. Later
	// catalog edits never recompute historical results.
	questions := state.QuestionsForExam(attempt.ExamID)
	result := Score(questions, answers)
	result.AttemptID = attemptID

	submittedAt := s.now().UTC()
	attempt.Status = models.AttemptSubmitted
	attempt.SubmittedAt = &submittedAt
	state.Results = append(state.Results, result)

	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Info("attempt submitted",
		"attempt_id", attemptID,
		"exam_id", attempt.ExamID,
		"user_id", attempt.UserID,
		"score", result.Score,
		"correct", result.CorrectCount,
		"total", result.TotalQuestions)

	s.publishSubmitted(ctx, attempt, result, endReason)
	return &result, nil
}

func (s *attemptService) publishSubmitted(ctx context.Context, attempt *models.Attempt, result models.Result, endReason string) {
	event := events.AttemptSubmittedEvent{
		AttemptID: attempt.ID,
		ExamID:    attempt.ExamID,
		UserID:    attempt.UserID,
		Result:    result,
		EndReason: endReason,
	}
	if err := s.publisher.Publish(ctx, events.TypeAttemptSubmitted, event); err != nil {
		// Best effort only; the submission already succeeded.
		s.logger.Error("failed to publish attempt.submitted", "attempt_id", attempt.ID, "error", err)
	}
}

// ===== READ PROJECTIONS =====

func (s *attemptService) GetAttempt(ctx context.Context, attemptID int64) (*models.Attempt, error) {
	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	attempt := state.FindAttempt(attemptID)
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	found := *attempt
	return &found, nil
}

func (s *attemptService) GetResult(ctx context.Context, attemptID int64) (*models.Result, error) {
	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range state.Results {
		if r.AttemptID == attemptID {
			return &r, nil
		}
	}
	return nil, ErrResultNotFound
}

func (s *attemptService) ListMyAttempts(ctx context.Context, userID int64) ([]models.AttemptWithExam, error) {
	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	attempts := make([]models.AttemptWithExam, 0)
	for _, a := range state.Attempts {
		if a.UserID != userID {
			continue
		}
		title := deletedExamTitle
		if exam := state.FindExam(a.ExamID); exam != nil {
			title = exam.Title
		}
		attempts = append(attempts, models.AttemptWithExam{Attempt: a, ExamTitle: title})
	}

	sort.SliceStable(attempts, func(i, j int) bool {
		if attempts[i].StartedAt.Equal(attempts[j].StartedAt) {
			return attempts[i].ID > attempts[j].ID
		}
		return attempts[i].StartedAt.After(attempts[j].StartedAt)
	})
	return attempts, nil
}

func (s *attemptService) ListResultsForExam(ctx context.Context, examID int64) ([]models.ResultWithAttempt, error) {
	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if state.FindExam(examID) == nil {
		return nil, ErrExamNotFound
	}

	results := make([]models.ResultWithAttempt, 0)
	for _, r := range state.Results {
		attempt := state.FindAttempt(r.AttemptID)
		if attempt == nil || attempt.ExamID != examID || attempt.Status != models.AttemptSubmitted {
			continue
		}
		results = append(results, models.ResultWithAttempt{
			Result:      r,
			Attempt:     *attempt,
			StudentName: s.directory.DisplayName(attempt.UserID),
		})
	}
	return results, nil
}
