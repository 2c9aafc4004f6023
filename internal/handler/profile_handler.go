package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/startuplaunch/internal/metrics"
	"github.com/hitoshi/startuplaunch/internal/model"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Ensure(ctx context.Context, p *model.Profile) (*model.Profile, bool, error)
	Update(ctx context.Context, userID string, patch model.ProfilePatch) (*model.Profile, error)
}

// ProfileHandler はプロフィールのHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
	metrics metrics.MetricsCollector
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface, mc metrics.MetricsCollector) *ProfileHandler {
	if mc == nil {
		mc = metrics.NopCollector{}
	}
	return &ProfileHandler{service: service, metrics: mc}
}

type createProfileRequest struct {
	UserID             string          `json:"userId" validate:"required"`
	Email              string          `json:"email" validate:"required,email"`
	DisplayName        *string         `json:"displayName"`
	AvatarURL          *string         `json:"avatarUrl"`
	OnboardingMetadata json.RawMessage `json:"onboardingMetadata"`
}

// updateProfileRequest はプロフィール更新リクエスト。UserIDはクエリパラメータから設定する。
type updateProfileRequest struct {
	UserID             string          `json:"userId" validate:"required"`
	Email              *string         `json:"email" validate:"omitnil,email"`
	DisplayName        *string         `json:"displayName"`
	AvatarURL          *string         `json:"avatarUrl"`
	OnboardingMetadata json.RawMessage `json:"onboardingMetadata"`
}

// profileResponse はプロフィールのAPIレスポンス。
type profileResponse struct {
	ID                 string          `json:"id"`
	Email              string          `json:"email"`
	DisplayName        *string         `json:"display_name"`
	AvatarURL          *string         `json:"avatar_url"`
	OnboardingMetadata json.RawMessage `json:"onboarding_metadata"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// GetProfile はプロフィールを返す。
// GET /getProfile?userId=ID
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := userQuery{UserID: r.URL.Query().Get("userId")}
	if apiErr := validateRequest(q); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	p, err := h.service.Get(r.Context(), q.UserID)
	if err != nil {
		handleServiceError(w, r, h.metrics, "getProfile", err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// CreateProfile はプロフィールが未作成なら作成する。
// 作成した場合は201、既存の場合は保存済みの内容を200で返す。
// POST /createProfile
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req createProfileRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateRequest(req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	metadata, apiErr := normalizeMetadata(req.OnboardingMetadata)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	if metadata == nil {
		metadata = model.EmptyOnboardingMetadata
	}

	saved, created, err := h.service.Ensure(r.Context(), &model.Profile{
		ID:                 req.UserID,
		Email:              req.Email,
		DisplayName:        req.DisplayName,
		AvatarURL:          req.AvatarURL,
		OnboardingMetadata: metadata,
	})
	if err != nil {
		handleServiceError(w, r, h.metrics, "createProfile", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toProfileResponse(saved))
}

// UpdateProfile はプロフィールを部分更新する。
// onboardingMetadataは指定された場合、ドキュメント全体を置き換える。
// PUT /updateProfile?userId=ID
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}

	var req updateProfileRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	req.UserID = r.URL.Query().Get("userId")
	if apiErr := validateRequest(req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	metadata, apiErr := normalizeMetadata(req.OnboardingMetadata)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	updated, err := h.service.Update(r.Context(), req.UserID, model.ProfilePatch{
		Email:              req.Email,
		DisplayName:        req.DisplayName,
		AvatarURL:          req.AvatarURL,
		OnboardingMetadata: metadata,
	})
	if err != nil {
		handleServiceError(w, r, h.metrics, "updateProfile", err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(updated))
}

func toProfileResponse(p *model.Profile) profileResponse {
	metadata := p.OnboardingMetadata
	if len(metadata) == 0 {
		metadata = model.EmptyOnboardingMetadata
	}
	return profileResponse{
		ID:                 p.ID,
		Email:              p.Email,
		DisplayName:        p.DisplayName,
		AvatarURL:          p.AvatarURL,
		OnboardingMetadata: metadata,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
