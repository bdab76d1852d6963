package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/portal-provas/exam-service/internal/models"
)

// PostgresStore persists the snapshot across normalized tables. Save replaces
// every logical entity inside one transaction, which is the
// "replace-or-fail" durability the snapshot contract asks a server-backed
// store to provide.
type PostgresStore struct {
	db *gorm.DB
}

type examRow struct {
	ID          int64 `gorm:"primaryKey"`
	Title       string
	Description string
	Duration    int
	CreatedAt   time.Time
	UserID      int64 `gorm:"index"`
}

type questionRow struct {
	ID      int64 `gorm:"primaryKey"`
	ExamID  int64 `gorm:"index"`
	Text    string
	Order   int            `gorm:"column:question_order"`
	Options datatypes.JSON `gorm:"type:jsonb"`
}

type attemptRow struct {
	ID          int64 `gorm:"primaryKey"`
	ExamID      int64 `gorm:"index"`
	UserID      int64 `gorm:"index"`
	StartedAt   time.Time
	SubmittedAt *time.Time
	Status      string
}

type resultRow struct {
	AttemptID      int64 `gorm:"primaryKey"`
	Score          float64
	TotalQuestions int
	CorrectCount   int
}

type counterRow struct {
	ID             int64 `gorm:"primaryKey"`
	NextExamID     int64
	NextQuestionID int64
	NextOptionID   int64
	NextAttemptID  int64
}

func (examRow) TableName() string     { return "exams" }
func (questionRow) TableName() string { return "questions" }
func (attemptRow) TableName() string  { return "attempts" }
func (resultRow) TableName() string   { return "results" }
func (counterRow) TableName() string  { return "counters" }

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&examRow{}, &questionRow{}, &attemptRow{}, &resultRow{}, &counterRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (*models.State, error) {
	var counters counterRow
	err := s.db.WithContext(ctx).First(&counters, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SeedState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load counters: %w", err)
	}

	state := &models.State{
		NextExamID:     counters.NextExamID,
		NextQuestionID: counters.NextQuestionID,
		NextOptionID:   counters.NextOptionID,
		NextAttemptID:  counters.NextAttemptID,
		Attempts:       []models.Attempt{},
		Results:        []models.Result{},
	}

	var exams []examRow
	if err := s.db.WithContext(ctx).Order("id").Find(&exams).Error; err != nil {
		return nil, fmt.Errorf("failed to load exams: %w", err)
	}
	for _, r := range exams {
		state.Exams = append(state.Exams, models.Exam{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Duration:    r.Duration,
			CreatedAt:   r.CreatedAt,
			UserID:      r.UserID,
		})
	}

	var questions []questionRow
	if err := s.db.WithContext(ctx).Order("id").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	for _, r := range questions {
		var opts []models.Option
		if len(r.Options) > 0 {
			if err := json.Unmarshal(r.Options, &opts); err != nil {
				return SeedState(), fmt.Errorf("%w: question %d options: %v", ErrSnapshotCorrupt, r.ID, err)
			}
		}
		state.Questions = append(state.Questions, models.Question{
			ID:      r.ID,
			ExamID:  r.ExamID,
			Text:    r.Text,
			Order:   r.Order,
			Options: opts,
		})
	}

	var attempts []attemptRow
	if err := s.db.WithContext(ctx).Order("id").Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}
	for _, r := range attempts {
		state.Attempts = append(state.Attempts, models.Attempt{
			ID:          r.ID,
			ExamID:      r.ExamID,
			UserID:      r.UserID,
			StartedAt:   r.StartedAt,
			SubmittedAt: r.SubmittedAt,
			Status:      models.AttemptStatus(r.Status),
		})
	}

	var results []resultRow
	if err := s.db.WithContext(ctx).Order("attempt_id").Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	for _, r := range results {
		state.Results = append(state.Results, models.Result{
			AttemptID:      r.AttemptID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			CorrectCount:   r.CorrectCount,
		})
	}

	return state, nil
}

func (s *PostgresStore) Save(ctx context.Context, state *models.State) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"results", "attempts", "questions", "exams"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for _, e := range state.Exams {
			row := examRow{
				ID:          e.ID,
				Title:       e.Title,
				Description: e.Description,
				Duration:    e.Duration,
				CreatedAt:   e.CreatedAt,
				UserID:      e.UserID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save exam %d: %w", e.ID, err)
			}
		}

		for _, q := range state.Questions {
			opts, err := json.Marshal(q.Options)
			if err != nil {
				return fmt.Errorf("failed to encode options for question %d: %w", q.ID, err)
			}
			row := questionRow{
				ID:      q.ID,
				ExamID:  q.ExamID,
				Text:    q.Text,
				Order:   q.Order,
				Options: opts,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save question %d: %w", q.ID, err)
			}
		}

		for _, a := range state.Attempts {
			row := attemptRow{
				ID:          a.ID,
				ExamID:      a.ExamID,
				UserID:      a.UserID,
				StartedAt:   a.StartedAt,
				SubmittedAt: a.SubmittedAt,
				Status:      string(a.Status),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save attempt %d: %w", a.ID, err)
			}
		}

		for _, r := range state.Results {
			row := resultRow{
				AttemptID:      r.AttemptID,
				Score:          r.Score,
				TotalQuestions: r.TotalQuestions,
				CorrectCount:   r.CorrectCount,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save result for attempt %d: %w", r.AttemptID, err)
			}
		}

		counters := counterRow{
			ID:             1,
			NextExamID:     state.NextExamID,
			NextQuestionID: state.NextQuestionID,
			NextOptionID:   state.NextOptionID,
			NextAttemptID:  state.NextAttemptID,
		}
		if err := tx.Save(&counters).Error; err != nil {
			return fmt.Errorf("failed to save counters: %w", err)
		}
		return nil
	})
}
