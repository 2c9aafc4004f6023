package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/startuplaunch/internal/model"
)

// SchemaInitializer はスキーマ初期化のインターフェース。
// database.SchemaManagerが実装する。
type SchemaInitializer interface {
	Init(ctx context.Context) error
}

// SchemaHandler はスキーマ初期化エンドポイントのハンドラー。
type SchemaHandler struct {
	initializer SchemaInitializer
}

// NewSchemaHandler はSchemaHandlerを生成する。
func NewSchemaHandler(initializer SchemaInitializer) *SchemaHandler {
	return &SchemaHandler{initializer: initializer}
}

type messageResponse struct {
	Message string `json:"message"`
}

// InitDB はテーブルとインデックスを冪等に作成する。
// GET|POST /initDb
func (h *SchemaHandler) InitDB(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if err := h.initializer.Init(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "schema initialization failed", slog.String("error", err.Error()))
		writeAPIErrorResponse(w, http.StatusInternalServerError, model.NewSchemaInitFailedError())
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Database initialized successfully"})
}
