package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/startuplaunch/internal/model"
)

func sampleProfile() *model.Profile {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &model.Profile{
		ID:                 "u1",
		Email:              "u1@example.com",
		DisplayName:        strPtr("User One"),
		OnboardingMetadata: []byte(`{"step":2}`),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// --- GET /getProfile テスト ---

func TestProfileHandler_GetProfile_Success(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{
		getFn: func(ctx context.Context, userID string) (*model.Profile, error) {
			if userID != "u1" {
				t.Errorf("userID = %q, want u1", userID)
			}
			return sampleProfile(), nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/getProfile?userId=u1", nil)
	w := httptest.NewRecorder()

	h.GetProfile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	result := parseJSONObject(t, w)
	if result["email"] != "u1@example.com" {
		t.Errorf("email = %v", result["email"])
	}
	if result["display_name"] != "User One" {
		t.Errorf("display_name = %v", result["display_name"])
	}
	if result["avatar_url"] != nil {
		t.Errorf("avatar_url = %v, want null", result["avatar_url"])
	}
	meta, ok := result["onboarding_metadata"].(map[string]any)
	if !ok || meta["step"] != float64(2) {
		t.Errorf("onboarding_metadata = %v", result["onboarding_metadata"])
	}
}

func TestProfileHandler_GetProfile_NotFound_Returns404(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/getProfile?userId=nonexistent", nil)
	w := httptest.NewRecorder()

	h.GetProfile(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if result := parseAPIErrorResponse(t, w); result["code"] != model.ErrCodeProfileNotFound {
		t.Errorf("code = %q, want %q", result["code"], model.ErrCodeProfileNotFound)
	}
}

func TestProfileHandler_GetProfile_MissingUserID_Returns400(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/getProfile", nil)
	w := httptest.NewRecorder()

	h.GetProfile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// --- POST /createProfile テスト ---

func TestProfileHandler_CreateProfile_Created(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{
		ensureFn: func(ctx context.Context, p *model.Profile) (*model.Profile, bool, error) {
			if p.ID != "u1" || p.Email != "u1@example.com" {
				t.Errorf("unexpected profile: %+v", p)
			}
			if string(p.OnboardingMetadata) != "{}" {
				t.Errorf("metadata = %s, want {}", p.OnboardingMetadata)
			}
			return p, true, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/createProfile", bytes.NewBufferString(`{"userId":"u1","email":"u1@example.com"}`))
	w := httptest.NewRecorder()

	h.CreateProfile(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
}

// 既存プロフィールは変更せず200で返す
func TestProfileHandler_CreateProfile_AlreadyExists_Returns200(t *testing.T) {
	existing := sampleProfile()
	h := NewProfileHandler(&mockProfileService{
		ensureFn: func(ctx context.Context, p *model.Profile) (*model.Profile, bool, error) {
			return existing, false, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/createProfile", bytes.NewBufferString(`{"userId":"u1","email":"other@example.com"}`))
	w := httptest.NewRecorder()

	h.CreateProfile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if result := parseJSONObject(t, w); result["email"] != existing.Email {
		t.Errorf("email = %v, want %q", result["email"], existing.Email)
	}
}

func TestProfileHandler_CreateProfile_InvalidEmail_Returns400(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/createProfile", bytes.NewBufferString(`{"userId":"u1","email":"not-an-email"}`))
	w := httptest.NewRecorder()

	h.CreateProfile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if result := parseAPIErrorResponse(t, w); result["code"] != model.ErrCodeInvalidRequest {
		t.Errorf("code = %q, want %q", result["code"], model.ErrCodeInvalidRequest)
	}
}

// --- PUT /updateProfile テスト ---

func TestProfileHandler_UpdateProfile_Success(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{
		updateFn: func(ctx context.Context, userID string, patch model.ProfilePatch) (*model.Profile, error) {
			if userID != "u1" {
				t.Errorf("userID = %q, want u1", userID)
			}
			if patch.DisplayName == nil || *patch.DisplayName != "Renamed" {
				t.Errorf("DisplayName = %v", patch.DisplayName)
			}
			if patch.Email != nil || patch.AvatarURL != nil {
				t.Errorf("unspecified fields must stay nil: %+v", patch)
			}
			if string(patch.OnboardingMetadata) != `{"done":true}` {
				t.Errorf("metadata = %s", patch.OnboardingMetadata)
			}
			p := sampleProfile()
			p.DisplayName = patch.DisplayName
			p.OnboardingMetadata = patch.OnboardingMetadata
			p.UpdatedAt = p.UpdatedAt.Add(time.Minute)
			return p, nil
		},
	}, nil)

	body := `{"displayName":"Renamed","onboardingMetadata":{"done":true}}`
	req := httptest.NewRequest(http.MethodPut, "/updateProfile?userId=u1", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if result := parseJSONObject(t, w); result["display_name"] != "Renamed" {
		t.Errorf("display_name = %v", result["display_name"])
	}
}

// onboardingMetadataのnullは未指定として扱う
func TestProfileHandler_UpdateProfile_NullMetadataIsAbsent(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{
		updateFn: func(ctx context.Context, userID string, patch model.ProfilePatch) (*model.Profile, error) {
			if patch.OnboardingMetadata != nil {
				t.Errorf("metadata = %s, want nil", patch.OnboardingMetadata)
			}
			return sampleProfile(), nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/updateProfile?userId=u1", bytes.NewBufferString(`{"onboardingMetadata":null}`))
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestProfileHandler_UpdateProfile_NonObjectMetadata_Returns400(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{}, nil)

	req := httptest.NewRequest(http.MethodPut, "/updateProfile?userId=u1", bytes.NewBufferString(`{"onboardingMetadata":[1,2]}`))
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestProfileHandler_UpdateProfile_MissingUserID_Returns400(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{}, nil)

	req := httptest.NewRequest(http.MethodPut, "/updateProfile", bytes.NewBufferString(`{"userId":"from-body"}`))
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestProfileHandler_UpdateProfile_NotFound_Returns404(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{}, nil)

	req := httptest.NewRequest(http.MethodPut, "/updateProfile?userId=ghost", bytes.NewBufferString(`{"displayName":"x"}`))
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestProfileHandler_UpdateProfile_WrongMethod_Returns405(t *testing.T) {
	h := NewProfileHandler(&mockProfileService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/updateProfile?userId=u1", nil)
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
