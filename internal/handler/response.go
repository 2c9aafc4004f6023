package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/lib/pq"

	"github.com/hitoshi/startuplaunch/internal/metrics"
	"github.com/hitoshi/startuplaunch/internal/middleware"
	"github.com/hitoshi/startuplaunch/internal/model"
)

// writeJSON は任意の値をJSONレスポンスとして書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeAPIErrorResponse はAPIErrorを統一フォーマットでレスポンスに書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// allowMethod はリクエストメソッドが許可リストに含まれるか確認する。
// 含まれない場合は405とAllowヘッダーを書き込みfalseを返す。
func allowMethod(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	if slices.Contains(allowed, r.Method) {
		return true
	}
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeAPIErrorResponse(w, http.StatusMethodNotAllowed, model.NewMethodNotAllowedError(allowed...))
	return false
}

// decodeJSONBody はリクエストボディをdstにデコードする。
// 空ボディは全フィールド未指定として扱う。
func decodeJSONBody(r *http.Request, dst any) *model.APIError {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return model.NewInvalidRequestError("Request body must be valid JSON")
	}
	return nil
}

// handleServiceError はサービス層のエラーをHTTPレスポンスに変換する。
// APIError以外はデータ層の失敗として扱い、詳細はログのみに記録する。
func handleServiceError(w http.ResponseWriter, r *http.Request, mc metrics.MetricsCollector, operation string, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	attrs := []any{
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		attrs = append(attrs,
			slog.String("pg_code", string(pqErr.Code)),
			slog.String("pg_constraint", pqErr.Constraint),
		)
	}
	slog.ErrorContext(r.Context(), "data access failed", attrs...)

	if mc != nil {
		mc.RecordDBError(operation)
	}
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case model.ErrCodeInvalidRequest, model.ErrCodeMissingFields, model.ErrCodeInvalidDifficulty:
		return http.StatusBadRequest
	case model.ErrCodeIdeaNotFound, model.ErrCodeProfileNotFound:
		return http.StatusNotFound
	case model.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
