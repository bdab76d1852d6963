package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/portal-provas/exam-service/internal/cache"
	"github.com/portal-provas/exam-service/internal/models"
	"github.com/portal-provas/exam-service/internal/store"
	"github.com/portal-provas/exam-service/internal/validator"
)

type catalogService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheHelper
	mu        *sync.Mutex
}

// NewCatalogService builds the catalog manager. The mutex is shared with the
// attempt manager: both mutate the same snapshot via load-modify-save, so
// their writers must be serialized within the process.
func NewCatalogService(st store.Store, logger *slog.Logger, v *validator.Validator, ch *cache.CacheHelper, mu *sync.Mutex) CatalogService {
	return &catalogService{
		store:     st,
		logger:    logger,
		validator: v,
		cache:     ch,
		mu:        mu,
	}
}

// load pulls the snapshot and logs (once per call) when a corrupt snapshot
// was replaced by the seed. Documented leniency: the caller proceeds.
func (s *catalogService) load(ctx context.Context) (*models.State, error) {
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

// ===== EXAM OPERATIONS =====

func (s *catalogService) ListExams(ctx context.Context, caller models.Identity) ([]models.Exam, error) {
	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// Authors see only their own exams; takers see the whole catalog.
	if caller.IsProfessor() {
		owned := make([]models.Exam, 0)
		for _, e := range state.Exams {
			if e.UserID == caller.UserID {
				owned = append(owned, e)
			}
		}
		return owned, nil
	}
	return append([]models.Exam{}, state.Exams...), nil
}

func (s *catalogService) GetExamWithQuestions(ctx context.Context, examID int64) (*models.ExamWithQuestions, error) {
	cacheKey := fmt.Sprintf("exam_with_questions:%d", examID)
	var cached models.ExamWithQuestions
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	exam := state.FindExam(examID)
	if exam == nil {
		return nil, ErrExamNotFound
	}

	questions := state.QuestionsForExam(examID)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})

	result := &models.ExamWithQuestions{Exam: *exam, Questions: questions}
	if err := s.cache.Set(ctx, cacheKey, result); err != nil && !errors.Is(err, cache.ErrCacheNotAvailable) {
		s.logger.Warn("failed to cache exam", "exam_id", examID, "error", err)
	}
	return result, nil
}

func (s *catalogService) CreateExam(ctx context.Context, req *CreateExamRequest, caller models.Identity) (*models.Exam, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	exam := models.Exam{
		ID:          state.NextExamID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    normalizeDuration(req.Duration),
		CreatedAt:   time.Now().UTC(),
		UserID:      caller.UserID,
	}
	state.NextExamID++
	state.Exams = append(state.Exams, exam)

	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Info("exam created", "exam_id", exam.ID, "user_id", caller.UserID)
	return &exam, nil
}

func (s *catalogService) UpdateExam(ctx context.Context, examID int64, req *UpdateExamRequest) (*models.Exam, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	exam := state.FindExam(examID)
	if exam == nil {
		return nil, ErrExamNotFound
	}

	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.Duration != nil {
		exam.Duration = normalizeDuration(*req.Duration)
	}

	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.invalidateExam(ctx, examID)

	s.logger.Info("exam updated", "exam_id", examID)
	updated := *exam
	return &updated, nil
}

func (s *catalogService) DeleteExam(ctx context.Context, examID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return err
	}

	if state.FindExam(examID) == nil {
		return ErrExamNotFound
	}

	exams := state.Exams[:0]
	for _, e := range state.Exams {
		if e.ID != examID {
			exams = append(exams, e)
		}
	}
	state.Exams = exams

	// Cascade: questions go with their exam. Attempts and results are left
	// untouched; listings tolerate the dangling exam id.
	questions := state.Questions[:0]
	for _, q := range state.Questions {
		if q.ExamID != examID {
			questions = append(questions, q)
		}
	}
	state.Questions = questions

	if err := s.store.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.invalidateExam(ctx, examID)

	s.logger.Info("exam deleted", "exam_id", examID)
	return nil
}

// ===== QUESTION OPERATIONS =====

func (s *catalogService) CreateQuestion(ctx context.Context, examID int64, req *CreateQuestionRequest) (*models.Question, error) {
	var errs validator.ValidationErrors
	errs = append(errs, s.validator.ValidateQuestionText(req.Text)...)
	errs = append(errs, s.validator.ValidateQuestionOptions(req.Options)...)
	if len(errs) > 0 {
		return nil, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if state.FindExam(examID) == nil {
		return nil, ErrExamNotFound
	}

	// New questions append after the current highest order. Order values stay
	// stable on deletion, so gaps are expected.
	maxOrder := 0
	for _, q := range state.QuestionsForExam(examID) {
		if q.Order > maxOrder {
			maxOrder = q.Order
		}
	}

	options := make([]models.Option, len(req.Options))
	for i, o := range req.Options {
		options[i] = models.Option{
			ID:        state.NextOptionID,
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
		}
		state.NextOptionID++
	}

	question := models.Question{
		ID:      state.NextQuestionID,
		ExamID:  examID,
		Text:    req.Text,
		Order:   maxOrder + 1,
		Options: options,
	}
	state.NextQuestionID++
	state.Questions = append(state.Questions, question)

	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.invalidateExam(ctx, examID)

	s.logger.Info("question created", "exam_id", examID, "question_id", question.ID)
	return &question, nil
}

func (s *catalogService) UpdateQuestion(ctx context.Context, examID, questionID int64, req *UpdateQuestionRequest) (*models.Question, error) {
	var errs validator.ValidationErrors
	if req.Text != nil {
		errs = append(errs, s.validator.ValidateQuestionText(*req.Text)...)
	}
	if req.Options != nil {
		errs = append(errs, s.validator.ValidateQuestionOptions(req.Options)...)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var question *models.Question
	for i := range state.Questions {
		if state.Questions[i].ExamID == examID && state.Questions[i].ID == questionID {
			question = &state.Questions[i]
			break
		}
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.Options != nil {
		// Reuse existing option ids positionally so recorded answers keep
		// resolving where the option set kept its shape. Extra options get
		// fresh ids.
		existingIDs := make([]int64, len(question.Options))
		for i, o := range question.Options {
			existingIDs[i] = o.ID
		}
		options := make([]models.Option, len(req.Options))
		for i, o := range req.Options {
			var id int64
			if i < len(existingIDs) {
				id = existingIDs[i]
			} else {
				id = state.NextOptionID
				state.NextOptionID++
			}
			options[i] = models.Option{ID: id, Text: o.Text, IsCorrect: o.IsCorrect}
		}
		question.Options = options
	}

	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.invalidateExam(ctx, examID)

	s.logger.Info("question updated", "exam_id", examID, "question_id", questionID)
	updated := *question
	return &updated, nil
}

func (s *catalogService) DeleteQuestion(ctx context.Context, examID, questionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return err
	}

	found := false
	questions := state.Questions[:0]
	for _, q := range state.Questions {
		if q.ExamID == examID && q.ID == questionID {
			found = true
			continue
		}
		questions = append(questions, q)
	}
	if !found {
		return ErrQuestionNotFound
	}
	state.Questions = questions

	if err := s.store.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.invalidateExam(ctx, examID)

	s.logger.Info("question deleted", "exam_id", examID, "question_id", questionID)
	return nil
}

func (s *catalogService) invalidateExam(ctx context.Context, examID int64) {
	key := fmt.Sprintf("exam_with_questions:%d", examID)
	if err := s.cache.Delete(ctx, key); err != nil && !errors.Is(err, cache.ErrCacheNotAvailable) {
		s.logger.Warn("failed to invalidate exam cache", "exam_id", examID, "error", err)
	}
}

// normalizeDuration applies the documented lenient policy: any non-positive
// duration becomes the default instead of being rejected.
func normalizeDuration(minutes int) int {
	if minutes <= 0 {
		return DefaultExamDuration
	}
	return minutes
}
