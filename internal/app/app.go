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

	"github.com/hitoshi/recruitdesk/internal/booking"
	"github.com/hitoshi/recruitdesk/internal/config"
	"github.com/hitoshi/recruitdesk/internal/database"
	"github.com/hitoshi/recruitdesk/internal/handler"
	"github.com/hitoshi/recruitdesk/internal/invite"
	"github.com/hitoshi/recruitdesk/internal/layout"
	"github.com/hitoshi/recruitdesk/internal/logger"
	"github.com/hitoshi/recruitdesk/internal/metrics"
	"github.com/hitoshi/recruitdesk/internal/middleware"
	"github.com/hitoshi/recruitdesk/internal/repository"
	"github.com/hitoshi/recruitdesk/internal/security"
	"github.com/hitoshi/recruitdesk/internal/template"
	"github.com/hitoshi/recruitdesk/internal/worker/cleanup"
	"github.com/hitoshi/recruitdesk/internal/worker/remind"
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
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandWorker:
		return runWorker(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// gridConfig はConfigから週グリッドのレイアウト定数を組み立てる。
func gridConfig(cfg *config.Config) layout.Config {
	return layout.Config{
		HourHeight: cfg.GridHourHeight,
		FirstHour:  cfg.GridFirstHour,
		LastHour:   cfg.GridLastHour,
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
	eventRepo := repository.NewPostgresEventRepo(db)
	attendeeRepo := repository.NewPostgresAttendeeRepo(db)
	directoryRepo := repository.NewPostgresDirectoryRepo(db)
	templateRepo := repository.NewPostgresEventTemplateRepo(db)

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. ドメインサービスの初期化
	sanitizer := security.NewEventContentSanitizer()

	bookingService := booking.NewService(
		eventRepo, attendeeRepo, directoryRepo,
		invite.NewRandomTokenSource(),
		invite.NewICSFormatter(),
		sanitizer,
		collector,
		slog.Default(),
		booking.Config{
			BaseURL:    cfg.BaseURL,
			GridConfig: gridConfig(cfg),
		},
	)

	templateService := template.NewService(templateRepo, sanitizer)

	// 5. ルーターの構築
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	// configのレート値はreq/min単位なのでreq/secに変換する
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.BookingRate = rate.Limit(float64(cfg.RateLimitBooking) / 60.0)
	rateLimiterCfg.BookingBurst = cfg.RateLimitBooking

	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	deps := &handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		StatusRecorder:    collector,

		BookingService:  bookingService,
		TemplateService: templateService,

		DB:       db,
		Gatherer: registry,
	}

	router := handler.NewRouter(deps)

	// 6. HTTPサーバーの起動
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

// runWorker はワーカーモードで起動する。
// DB接続を開き、リマインドスキャナを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとシャットダウンする。
func runWorker(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established (worker)")

	// 2. リポジトリとメトリクスの初期化
	eventRepo := repository.NewPostgresEventRepo(db)
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 3. リマインドスキャナとクリーンアップジョブの初期化
	reminder := remind.NewReminder(eventRepo, collector, slog.Default(), cfg.ReminderLead)

	cleanupJob := cleanup.NewCleanupJob(db, slog.Default())
	if cfg.EventRetentionDays > 0 {
		cleanupJob.RetentionDays = cfg.EventRetentionDays
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		slog.Info("shutting down worker...")
		cancel()
	}()

	slog.Info("worker starting",
		slog.Duration("reminder_interval", cfg.ReminderInterval),
		slog.Duration("reminder_lead", cfg.ReminderLead),
		slog.Duration("cleanup_interval", cfg.CleanupInterval),
		slog.Int("event_retention_days", cleanupJob.RetentionDays),
	)

	// クリーンアップジョブはバックグラウンドで定期実行する
	go cleanupJob.Start(ctx, cfg.CleanupInterval)

	// リマインドスキャナをメインgoroutineで実行（ブロッキング）
	reminder.Start(ctx, cfg.ReminderInterval)

	slog.Info("worker stopped gracefully")
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
// /healthz エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/healthz", port)
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
