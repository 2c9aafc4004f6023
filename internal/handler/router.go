package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hitoshi/startuplaunch/internal/metrics"
	"github.com/hitoshi/startuplaunch/internal/middleware"
	"github.com/hitoshi/startuplaunch/internal/model"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ドメイン
	IdeaService       IdeaServiceInterface
	ProfileService    ProfileServiceInterface
	SchemaInitializer SchemaInitializer
	HealthChecker     HealthChecker

	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter // nilの場合はレート制限なし
	Logger            *slog.Logger

	// メトリクス
	Metrics        metrics.MetricsCollector
	MetricsHandler http.Handler // nilの場合は/metricsを公開しない
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → RealIP → Recovery → Logging → SecurityHeaders → CORS → Metrics
//
// CRUDエンドポイントにのみレート制限を適用し、/healthと/metricsは対象外とする。
// 各CRUDハンドラーは自身で許可メソッドを判定するため、全メソッドでマウントする。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mc := deps.Metrics
	if mc == nil {
		mc = metrics.NopCollector{}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(metrics.Middleware(mc))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIErrorResponse(w, http.StatusNotFound, &model.APIError{
			Code:     "NOT_FOUND",
			Message:  "Endpoint not found",
			Category: "request",
			Action:   "Check the request path.",
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeAPIErrorResponse(w, http.StatusMethodNotAllowed, model.NewMethodNotAllowedError(http.MethodGet))
	})

	ideaHandler := NewIdeaHandler(deps.IdeaService, mc)
	profileHandler := NewProfileHandler(deps.ProfileService, mc)
	schemaHandler := NewSchemaHandler(deps.SchemaInitializer)

	// --- 運用エンドポイント ---
	if deps.HealthChecker != nil {
		r.Get("/health", NewHealthHandler(deps.HealthChecker))
	}
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- CRUDエンドポイント ---
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		// アイデア
		r.HandleFunc("/createIdea", ideaHandler.CreateIdea)
		r.HandleFunc("/getIdeas", ideaHandler.GetIdeas)
		r.HandleFunc("/updateIdea", ideaHandler.UpdateIdea)
		r.HandleFunc("/deleteIdea", ideaHandler.DeleteIdea)

		// プロフィール
		r.HandleFunc("/getProfile", profileHandler.GetProfile)
		r.HandleFunc("/createProfile", profileHandler.CreateProfile)
		r.HandleFunc("/updateProfile", profileHandler.UpdateProfile)

		// スキーマ
		r.HandleFunc("/initDb", schemaHandler.InitDB)
	})

	return r
}
