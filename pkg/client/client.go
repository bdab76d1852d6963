// Package client implements the catalog and attempt service interfaces
// against a remote exam-service instance. Every operation maps 1:1 onto one
// REST request; success payloads arrive in a {"data": T} envelope, and any
// non-2xx status is surfaced as a transport failure without leaking the
// response body. No retries: attempt start/submit are not safe to blind-retry
// without idempotency keys, so retry policy belongs to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/portal-provas/exam-service/internal/models"
	"github.com/portal-provas/exam-service/internal/services"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	identity   models.Identity
}

// Option configures the client.
type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New builds a client acting as the given identity. The identity headers are
// what the remote service's identity middleware trusts; in a real deployment
// an auth proxy sets them instead. Because the identity is fixed per client,
// the per-call identity and user-id arguments of the service interfaces are
// ignored here; the remote service resolves the caller from the headers.
func New(baseURL string, identity models.Identity, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		identity:   identity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ services.CatalogService = (*Client)(nil)
	_ services.AttemptService = (*Client)(nil)
)

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", services.ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-User-ID", fmt.Sprintf("%d", c.identity.UserID))
	req.Header.Set("X-User-Role", string(c.identity.Role))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", services.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return c.notFoundError(path)
	case resp.StatusCode == http.StatusConflict:
		return services.ErrAttemptAlreadySubmitted
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: unexpected status %d", services.ErrTransport, resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: malformed response envelope: %v", services.ErrTransport, err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		return fmt.Errorf("%w: malformed response payload: %v", services.ErrTransport, err)
	}
	return nil
}

// notFoundError picks the sentinel matching the resource addressed by path.
// Exam results paths end in "/results" and must not fall into the singular
// "/result" attempt-path case: a 404 there means the exam is unknown.
func (c *Client) notFoundError(path string) error {
	switch {
	case strings.Contains(path, "/questions/"):
		return services.ErrQuestionNotFound
	case strings.HasSuffix(path, "/results"):
		return services.ErrExamNotFound
	case strings.HasSuffix(path, "/result"):
		return services.ErrResultNotFound
	case strings.HasPrefix(path, "/api/attempts/"):
		return services.ErrAttemptNotFound
	default:
		return services.ErrExamNotFound
	}
}

// ===== CATALOG OPERATIONS =====

func (c *Client) ListExams(ctx context.Context, _ models.Identity) ([]models.Exam, error) {
	var exams []models.Exam
	if err := c.do(ctx, http.MethodGet, "/api/exams", nil, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (c *Client) GetExamWithQuestions(ctx context.Context, examID int64) (*models.ExamWithQuestions, error) {
	var exam models.ExamWithQuestions
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/exams/%d", examID), nil, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

func (c *Client) CreateExam(ctx context.Context, req *services.CreateExamRequest, _ models.Identity) (*models.Exam, error) {
	var exam models.Exam
	if err := c.do(ctx, http.MethodPost, "/api/exams", req, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

func (c *Client) UpdateExam(ctx context.Context, examID int64, req *services.UpdateExamRequest) (*models.Exam, error) {
	var exam models.Exam
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/exams/%d", examID), req, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

func (c *Client) DeleteExam(ctx context.Context, examID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/exams/%d", examID), nil, nil)
}

func (c *Client) CreateQuestion(ctx context.Context, examID int64, req *services.CreateQuestionRequest) (*models.Question, error) {
	var question models.Question
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/exams/%d/questions", examID), req, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, examID, questionID int64, req *services.UpdateQuestionRequest) (*models.Question, error) {
	var question models.Question
	path := fmt.Sprintf("/api/exams/%d/questions/%d", examID, questionID)
	if err := c.do(ctx, http.MethodPut, path, req, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, examID, questionID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/exams/%d/questions/%d", examID, questionID), nil, nil)
}

// ===== ATTEMPT OPERATIONS =====

func (c *Client) Start(ctx context.Context, examID, _ int64) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/exams/%d/attempts", examID), nil, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (c *Client) Submit(ctx context.Context, attemptID int64, answers []models.Answer) (*models.Result, error) {
	var result models.Result
	req := services.SubmitAttemptRequest{Answers: answers}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/attempts/%d/submit", attemptID), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) HandleExpiry(ctx context.Context, attemptID int64) (*models.Result, error) {
	var result models.Result
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/attempts/%d/expire", attemptID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetAttempt(ctx context.Context, attemptID int64) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/attempts/%d", attemptID), nil, &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (c *Client) GetResult(ctx context.Context, attemptID int64) (*models.Result, error) {
	var result models.Result
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/attempts/%d/result", attemptID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListMyAttempts(ctx context.Context, _ int64) ([]models.AttemptWithExam, error) {
	var attempts []models.AttemptWithExam
	if err := c.do(ctx, http.MethodGet, "/api/attempts", nil, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (c *Client) ListResultsForExam(ctx context.Context, examID int64) ([]models.ResultWithAttempt, error) {
	var results []models.ResultWithAttempt
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/exams/%d/results", examID), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
