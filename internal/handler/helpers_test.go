package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/startuplaunch/internal/model"
)

// --- モック定義 ---

// mockIdeaService はIdeaServiceInterfaceのモック実装。
type mockIdeaService struct {
	createFn func(ctx context.Context, idea *model.StartupIdea) (*model.StartupIdea, error)
	listFn   func(ctx context.Context, userID string) ([]*model.StartupIdea, error)
	updateFn func(ctx context.Context, userID, ideaID string, patch model.IdeaPatch) (*model.StartupIdea, error)
	deleteFn func(ctx context.Context, userID, ideaID string) error
}

func (m *mockIdeaService) Create(ctx context.Context, idea *model.StartupIdea) (*model.StartupIdea, error) {
	if m.createFn != nil {
		return m.createFn(ctx, idea)
	}
	return idea, nil
}

func (m *mockIdeaService) List(ctx context.Context, userID string) ([]*model.StartupIdea, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return []*model.StartupIdea{}, nil
}

func (m *mockIdeaService) Update(ctx context.Context, userID, ideaID string, patch model.IdeaPatch) (*model.StartupIdea, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, ideaID, patch)
	}
	return nil, model.NewIdeaNotFoundError()
}

func (m *mockIdeaService) Delete(ctx context.Context, userID, ideaID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, ideaID)
	}
	return nil
}

// mockProfileService はProfileServiceInterfaceのモック実装。
type mockProfileService struct {
	getFn    func(ctx context.Context, userID string) (*model.Profile, error)
	ensureFn func(ctx context.Context, p *model.Profile) (*model.Profile, bool, error)
	updateFn func(ctx context.Context, userID string, patch model.ProfilePatch) (*model.Profile, error)
}

func (m *mockProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, model.NewProfileNotFoundError()
}

func (m *mockProfileService) Ensure(ctx context.Context, p *model.Profile) (*model.Profile, bool, error) {
	if m.ensureFn != nil {
		return m.ensureFn(ctx, p)
	}
	return p, true, nil
}

func (m *mockProfileService) Update(ctx context.Context, userID string, patch model.ProfilePatch) (*model.Profile, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, patch)
	}
	return nil, model.NewProfileNotFoundError()
}

// mockSchemaInitializer はSchemaInitializerのモック実装。
type mockSchemaInitializer struct {
	initFn func(ctx context.Context) error
	calls  int
}

func (m *mockSchemaInitializer) Init(ctx context.Context) error {
	m.calls++
	if m.initFn != nil {
		return m.initFn(ctx)
	}
	return nil
}

// mockHealthChecker はHealthCheckerのモック実装。
type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) PingContext(ctx context.Context) error {
	return m.err
}

// mockMetrics はMetricsCollectorのモック実装。DBエラーの記録のみ保持する。
type mockMetrics struct {
	dbErrors []string
}

func (m *mockMetrics) RecordRequest(route, method string, statusCode int, duration time.Duration) {}

func (m *mockMetrics) RecordDBError(operation string) {
	m.dbErrors = append(m.dbErrors, operation)
}

// --- テストヘルパー ---

// parseAPIErrorResponse はレスポンスボディからAPIErrorレスポンスをパースするヘルパー。
func parseAPIErrorResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return result
}

// parseJSONObject はレスポンスボディをJSONオブジェクトとしてパースするヘルパー。
func parseJSONObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return result
}

func strPtr(s string) *string { return &s }

func sampleIdea() *model.StartupIdea {
	return &model.StartupIdea{
		ID:               "3f1c9a52-0d8e-4b7a-9a61-7c0f1f8a2b11",
		UserID:           "u1",
		Title:            "T",
		Description:      "D",
		Category:         "SaaS",
		EstimatedRevenue: "$1k/mo",
		Difficulty:       model.DifficultyEasy,
		TimeToLaunch:     "2 weeks",
		CreatedAt:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
