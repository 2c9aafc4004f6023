package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hitoshi/startuplaunch/internal/metrics"
	"github.com/hitoshi/startuplaunch/internal/model"
)

// IdeaServiceInterface はアイデアハンドラーが必要とするサービスインターフェース。
type IdeaServiceInterface interface {
	// Create はアイデアを作成する。
	Create(ctx context.Context, idea *model.StartupIdea) (*model.StartupIdea, error)
	// List はユーザーのアイデアを新しい順に返す。
	List(ctx context.Context, userID string) ([]*model.StartupIdea, error)
	// Update はユーザーが所有するアイデアを部分更新する。
	Update(ctx context.Context, userID, ideaID string, patch model.IdeaPatch) (*model.StartupIdea, error)
	// Delete はユーザーが所有するアイデアを削除する。
	Delete(ctx context.Context, userID, ideaID string) error
}

// IdeaHandler はアイデアCRUDのHTTPハンドラー。
type IdeaHandler struct {
	service IdeaServiceInterface
	metrics metrics.MetricsCollector
}

// NewIdeaHandler はIdeaHandlerを生成する。
func NewIdeaHandler(service IdeaServiceInterface, mc metrics.MetricsCollector) *IdeaHandler {
	if mc == nil {
		mc = metrics.NopCollector{}
	}
	return &IdeaHandler{service: service, metrics: mc}
}

// createIdeaRequest はアイデア作成リクエストのボディ。
type createIdeaRequest struct {
	UserID           string `json:"userId" validate:"required"`
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description" validate:"required"`
	Category         string `json:"category" validate:"required"`
	EstimatedRevenue string `json:"estimatedRevenue" validate:"required"`
	Difficulty       string `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	TimeToLaunch     string `json:"timeToLaunch" validate:"required"`
}

// updateIdeaRequest はアイデア更新リクエスト。
// IDはクエリパラメータから設定し、ボディのidは無視する。
type updateIdeaRequest struct {
	ID               string  `json:"id" validate:"required"`
	UserID           string  `json:"userId" validate:"required"`
	Title            *string `json:"title" validate:"omitnil,min=1"`
	Description      *string `json:"description" validate:"omitnil,min=1"`
	Category         *string `json:"category" validate:"omitnil,min=1"`
	EstimatedRevenue *string `json:"estimatedRevenue" validate:"omitnil,min=1"`
	Difficulty       *string `json:"difficulty" validate:"omitnil,oneof=Easy Medium Hard"`
	TimeToLaunch     *string `json:"timeToLaunch" validate:"omitnil,min=1"`
}

// ideaOwnerQuery はidとuserIdをクエリパラメータで受け取る操作の入力。
type ideaOwnerQuery struct {
	ID     string `json:"id" validate:"required"`
	UserID string `json:"userId" validate:"required"`
}

// userQuery はuserIdのみを受け取る操作の入力。
type userQuery struct {
	UserID string `json:"userId" validate:"required"`
}

// ideaResponse はアイデアのAPIレスポンス。
type ideaResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	EstimatedRevenue string    `json:"estimated_revenue"`
	Difficulty       string    `json:"difficulty"`
	TimeToLaunch     string    `json:"time_to_launch"`
	CreatedAt        time.Time `json:"created_at"`
}

// deleteIdeaResponse は削除成功時のレスポンス。
type deleteIdeaResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateIdea はアイデアを作成する。
// POST /createIdea
func (h *IdeaHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req createIdeaRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	created, err := h.service.Create(r.Context(), &model.StartupIdea{
		UserID:           req.UserID,
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		EstimatedRevenue: req.EstimatedRevenue,
		Difficulty:       model.Difficulty(req.Difficulty),
		TimeToLaunch:     req.TimeToLaunch,
	})
	if err != nil {
		handleServiceError(w, r, h.metrics, "createIdea", err)
		return
	}

	writeJSON(w, http.StatusCreated, toIdeaResponse(created))
}

// GetIdeas はユーザーのアイデア一覧を新しい順に返す。
// GET /getIdeas?userId=ID
func (h *IdeaHandler) GetIdeas(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := userQuery{UserID: r.URL.Query().Get("userId")}
	if apiErr := validateRequest(q); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	ideas, err := h.service.List(r.Context(), q.UserID)
	if err != nil {
		handleServiceError(w, r, h.metrics, "getIdeas", err)
		return
	}

	resp := make([]ideaResponse, len(ideas))
	for i, idea := range ideas {
		resp[i] = toIdeaResponse(idea)
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateIdea はアイデアを部分更新する。
// PUT /updateIdea?id=ID
func (h *IdeaHandler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}

	var req updateIdeaRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	req.ID = r.URL.Query().Get("id")
	if apiErr := validateRequest(req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	patch := model.IdeaPatch{
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		EstimatedRevenue: req.EstimatedRevenue,
		TimeToLaunch:     req.TimeToLaunch,
	}
	if req.Difficulty != nil {
		d := model.Difficulty(*req.Difficulty)
		patch.Difficulty = &d
	}

	updated, err := h.service.Update(r.Context(), req.UserID, req.ID, patch)
	if err != nil {
		handleServiceError(w, r, h.metrics, "updateIdea", err)
		return
	}

	writeJSON(w, http.StatusOK, toIdeaResponse(updated))
}

// DeleteIdea はアイデアを削除する。
// DELETE /deleteIdea?id=ID&userId=ID
func (h *IdeaHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodDelete) {
		return
	}

	q := ideaOwnerQuery{
		ID:     r.URL.Query().Get("id"),
		UserID: r.URL.Query().Get("userId"),
	}
	if apiErr := validateRequest(q); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.service.Delete(r.Context(), q.UserID, q.ID); err != nil {
		handleServiceError(w, r, h.metrics, "deleteIdea", err)
		return
	}

	writeJSON(w, http.StatusOK, deleteIdeaResponse{
		Success: true,
		Message: "Idea deleted successfully",
	})
}

// toIdeaResponse はドメインモデルをレスポンス型に変換する。
func toIdeaResponse(idea *model.StartupIdea) ideaResponse {
	return ideaResponse{
		ID:               idea.ID,
		UserID:           idea.UserID,
		Title:            idea.Title,
		Description:      idea.Description,
		Category:         idea.Category,
		EstimatedRevenue: idea.EstimatedRevenue,
		Difficulty:       string(idea.Difficulty),
		TimeToLaunch:     idea.TimeToLaunch,
		CreatedAt:        idea.CreatedAt,
	}
}
