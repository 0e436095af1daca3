package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/auth"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/calendar"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/config"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/copingtool"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/craving"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/database"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/handler"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/journal"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/logger"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/metrics"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/middleware"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/repository"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/security"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/user"
	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/worker/cleanup"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)
	toolRepo := repository.NewPostgresCopingToolRepo(db)
	completionRepo := repository.NewPostgresCompletionRepo(db)
	cravingRepo := repository.NewPostgresCravingSessionRepo(db)
	journalRepo := repository.NewPostgresJournalRepo(db)
	calendarRepo := repository.NewPostgresCalendarEventRepo(db)

	// 3. セキュリティサービスとメトリクスの初期化
	sanitizer := security.NewTextSanitizer()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. ドメインサービスの初期化
	authService := auth.NewService(userRepo, sessionRepo, auth.ServiceConfig{
		SessionMaxAge: cfg.SessionMaxAge,
		BcryptCost:    cfg.BcryptCost,
	})

	journalService := journal.NewService(journalRepo, sanitizer, collector)

	// 必須ツール完了時の自動記録はジャーナルサービスに委譲する
	copingToolService := copingtool.NewService(
		toolRepo, completionRepo, cravingRepo, journalService, collector,
	)

	cravingService := craving.NewService(cravingRepo, sanitizer)
	calendarService := calendar.NewService(calendarRepo, sanitizer)
	userService := user.NewService(userRepo, sessionRepo, sanitizer, cfg.BcryptCost)

	// 5. レートリミッタの構築（configはreq/min単位、rate.Limitはreq/sec単位）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.PasswordChangeRate = rate.Limit(float64(cfg.RateLimitPassword) / 60.0)
	rateLimiterCfg.PasswordChangeBurst = cfg.RateLimitPassword

	// 6. ルーターの構築
	deps := &handler.RouterDeps{
		SessionFinder:     sessionRepo,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       middleware.NewRateLimiter(rateLimiterCfg),

		MetricsCollector: collector,
		MetricsGatherer:  registry,

		AuthService:       authService,
		CopingToolService: copingToolService,
		JournalService:    journalService,
		CravingService:    cravingService,
		CalendarService:   calendarService,
		UserService:       userService,

		HealthChecker: db.Ping,
	}

	router := handler.NewRouter(deps)

	// 7. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	jobCtx, jobCancel := context.WithCancel(context.Background())
	defer jobCancel()

	// 期限切れセッションのクリーンアップを日次でバックグラウンド実行
	cleanupJob := cleanup.NewSessionCleanupJob(db, slog.Default())
	go func() {
		// 起動直後に1回実行
		if err := cleanupJob.Run(jobCtx); err != nil {
			slog.Error("session cleanup job failed", slog.String("error", err.Error()))
		}

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-ticker.C:
				if err := cleanupJob.Run(jobCtx); err != nil {
					slog.Error("session cleanup job failed", slog.String("error", err.Error()))
				}
			}
		}
	}()

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
