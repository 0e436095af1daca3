package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/metrics"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// メトリクス
	MetricsCollector *metrics.Collector
	MetricsGatherer  prometheus.Gatherer

	// サービス
	AuthService       AuthServiceInterface
	CopingToolService CopingToolServiceInterface
	JournalService    JournalServiceInterface
	CravingService    CravingServiceInterface
	CalendarService   CalendarServiceInterface
	UserService       UserServiceInterface

	// ヘルスチェック
	HealthChecker func() error
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → Session → RateLimit(General)
//
// 公開ルート（/health、/metrics、GET /api/coping-tools、/auth/register、/auth/login）は
// セッションミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())

	authHandler := NewAuthHandler(deps.AuthService)
	copingToolHandler := NewCopingToolHandler(deps.CopingToolService)
	journalHandler := NewJournalHandler(deps.JournalService)
	cravingHandler := NewCravingHandler(deps.CravingService)
	calendarHandler := NewCalendarHandler(deps.CalendarService)
	userHandler := NewUserHandler(deps.UserService)

	// --- 認証不要のルート ---

	r.Get("/health", healthHandler(deps.HealthChecker))

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// カタログは公開。完了記録・一覧は認証が必要。
	r.Get("/api/coping-tools", copingToolHandler.ListCatalog)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		// コーピングツール
		// カタログ（GET /api/coping-tools）は公開ルートのため、同じパターンに
		// サブルーターをマウントすると完全一致パスまで奪ってしまう。
		// 認証が必要なサブパスのみ個別に登録する。
		r.Post("/api/coping-tools/complete", copingToolHandler.Complete)
		r.Get("/api/coping-tools/completions", copingToolHandler.ListCompletions)

		// ジャーナル
		r.Route("/api/journal", func(r chi.Router) {
			r.Get("/", journalHandler.List)
			r.Post("/", journalHandler.Create)
			r.Get("/stats", journalHandler.Stats)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", journalHandler.Patch)
				r.Delete("/", journalHandler.Delete)
			})
		})

		// クレービングセッション
		r.Route("/api/craving-sessions", func(r chi.Router) {
			r.Get("/", cravingHandler.List)
			r.Post("/", cravingHandler.Start)
			r.Post("/{id}/complete", cravingHandler.Complete)
		})

		// カレンダーイベント
		r.Route("/api/calendar-events", func(r chi.Router) {
			r.Get("/", calendarHandler.List)
			r.Post("/", calendarHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", calendarHandler.Patch)
				r.Delete("/", calendarHandler.Delete)
			})
		})

		// ユーザー管理
		r.Route("/api/user", func(r chi.Router) {
			r.Get("/profile", userHandler.GetProfile)
			r.Put("/profile", userHandler.UpdateProfile)

			// パスワード変更は専用のより厳しいレート制限を重ねる
			r.With(deps.RateLimiter.PasswordChangeMiddleware()).
				Post("/change-password", userHandler.ChangePassword)
		})

		r.Delete("/api/users/me", userHandler.Withdraw)
	})

	// リクエストログとHTTPメトリクスは全ルートに効かせる
	var root http.Handler = r
	return wrapWithLogging(root, deps.MetricsCollector)
}

// wrapWithLogging はルーター全体をロギングミドルウェアで包む。
func wrapWithLogging(next http.Handler, collector *metrics.Collector) http.Handler {
	var rm middleware.RequestMetrics
	if collector != nil {
		rm = collector
	}
	return middleware.NewLoggingMiddleware(slog.Default(), rm)(next)
}

// healthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func healthHandler(check func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
