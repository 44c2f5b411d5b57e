package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/recruitdesk/internal/metrics"
	"github.com/hitoshi/recruitdesk/internal/middleware"
)

// Pinger はヘルスチェックで使うストア疎通確認のインターフェース。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	StatusRecorder    middleware.StatusRecorder

	// サービス
	BookingService  BookingServiceInterface
	TemplateService TemplateServiceInterface

	// 運用系
	DB       Pinger
	Gatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → SecurityHeaders → CORS → RateLimit(General)
//
// /healthz と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.StatusRecorder))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	eventHandler := NewEventHandler(deps.BookingService)
	templateHandler := NewTemplateHandler(deps.TemplateService)

	// --- 運用系ルート（レート制限の外） ---

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if deps.DB != nil {
			if err := deps.DB.PingContext(req.Context()); err != nil {
				deps.Logger.Error("ヘルスチェックに失敗しました", slog.String("error", err.Error()))
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- APIルート ---
	// ミドルウェアスタック: RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 面接予約
		r.Route("/api/interviews", func(r chi.Router) {
			// POST /api/interviews - 予約作成（専用レート制限を追加）
			r.With(deps.RateLimiter.BookingMiddleware()).Post("/", eventHandler.CreateInterview)

			r.Get("/upcoming", eventHandler.ListUpcoming)
			r.Get("/window", eventHandler.DayWindow)
			r.Get("/confirm/{token}", eventHandler.ConfirmByToken)
			r.Delete("/{id}", eventHandler.DeleteInterview)
		})

		// イベントテンプレート
		r.Route("/api/templates", func(r chi.Router) {
			r.Get("/", templateHandler.ListTemplates)
			r.Post("/", templateHandler.CreateTemplate)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", templateHandler.GetTemplate)
				r.Put("/", templateHandler.UpdateTemplate)
				r.Delete("/", templateHandler.DeleteTemplate)
				r.Post("/preview", templateHandler.PreviewTemplate)
			})
		})
	})

	return r
}
