package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alassaneba1/JangQuranAkSunna/internal/notify"
	"github.com/alassaneba1/JangQuranAkSunna/internal/payment"
	"github.com/alassaneba1/JangQuranAkSunna/internal/repository"
	"github.com/alassaneba1/JangQuranAkSunna/internal/server"
	"github.com/alassaneba1/JangQuranAkSunna/internal/service"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/auth"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/db"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/helpers"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/logger"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/metrics"
)

func main() {
	log := logger.NewLogger("catalog-service")
	log.Info("Starting Catalog Service...")

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment")
	}

	database, err := db.NewConnection(db.Config{
		Host:     getEnv("DB_HOST", "mysql"),
		Port:     getEnvInt("DB_PORT", 3306),
		User:     getEnv("DB_USER", "jangquran_user"),
		Password: getEnv("DB_PASSWORD", "jangquran_password"),
		Database: getEnv("DB_DATABASE", "jangquran_db"),
	})
	if err != nil {
		log.WithField("error", err).Fatal("Failed to connect to database")
	}
	defer database.Close()

	if err := validateSchema(database); err != nil {
		log.WithField("error", err).Warn("Schema validation warning")
	}
	log.Info("Database connected and schema validated")

	validator := helpers.NewCustomValidator()
	ids := helpers.NewIDGenerator()
	serviceMetrics := metrics.NewMetrics("catalog")

	// Repositories
	themeRepo := repository.NewThemeRepository(database.DB)
	contentRepo := repository.NewContentRepository(database.DB)
	assetRepo := repository.NewAssetRepository(database.DB)
	seriesRepo := repository.NewSeriesRepository(database.DB)
	teacherRepo := repository.NewTeacherRepository(database.DB)
	mosqueRepo := repository.NewMosqueRepository(database.DB)
	favoriteRepo := repository.NewFavoriteRepository(database.DB)
	ratingRepo := repository.NewRatingRepository(database.DB)
	progressRepo := repository.NewProgressRepository(database.DB)
	followRepo := repository.NewFollowRepository(database.DB)
	reportRepo := repository.NewReportRepository(database.DB)
	donationRepo := repository.NewDonationRepository(database.DB)

	// Payment collaborators
	waveClient := payment.NewWaveClient(
		getEnv("WAVE_API_URL", "https://api.wave.com"),
		getEnv("WAVE_API_KEY", ""),
	)
	dispatcher := notify.NewHTTPDispatcher(getEnv("NOTIFY_URL", "http://notifications:8080"))

	// Services
	themeService := service.NewThemeService(themeRepo, contentRepo, seriesRepo, validator, log)
	contentService := service.NewContentService(
		contentRepo, assetRepo, seriesRepo, teacherRepo, mosqueRepo,
		themeService, validator, serviceMetrics, log)
	engagementService := service.NewEngagementService(
		favoriteRepo, ratingRepo, progressRepo, followRepo,
		contentRepo, teacherRepo, mosqueRepo, seriesRepo, log)
	moderationService := service.NewModerationService(
		reportRepo, contentRepo, contentService, validator,
		int64(getEnvInt("FLAG_THRESHOLD", 5)), log)
	donationService := service.NewDonationService(
		donationRepo, waveClient, dispatcher, validator, ids,
		int64(getEnvInt("PLATFORM_FEE_BASIS_POINTS", 250)), serviceMetrics, log)

	var tokenValidator auth.TokenValidator
	if spec := os.Getenv("AUTH_TOKENS"); spec != "" {
		tokens, err := auth.ParseStaticTokens(spec)
		if err != nil {
			log.WithField("error", err).Fatal("Invalid AUTH_TOKENS")
		}
		tokenValidator = auth.NewStaticTokenValidator(tokens)
		log.WithField("tokens", len(tokens)).Info("Token authentication enabled")
	}

	srv := server.New(server.Services{
		Themes:     themeService,
		Contents:   contentService,
		Engagement: engagementService,
		Moderation: moderationService,
		Donations:  donationService,
	}, serviceMetrics, tokenValidator, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Receipt backfill: re-sends receipts that failed at settlement time.
	receiptWorker := service.NewReceiptWorker(donationService, donationRepo,
		time.Duration(getEnvInt("RECEIPT_SWEEP_SECONDS", 300))*time.Second,
		getEnvInt("RECEIPT_SWEEP_BATCH", 50), log)
	go receiptWorker.Run(ctx)

	go recordPoolStats(ctx, database, serviceMetrics)

	metricsPort := getEnv("METRICS_PORT", "9090")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+metricsPort, mux); err != nil {
			log.WithField("error", err).Error("Metrics server stopped")
		}
	}()

	port := getEnv("GRPC_PORT", "50060")
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		log.WithField("error", err).WithField("port", port).Fatal("Failed to listen")
	}

	log.WithField("port", port).WithField("metrics_port", metricsPort).Info("Catalog Service started")

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down gracefully...")
		cancel()
		srv.GracefulStop()
		database.Close()
		log.Info("Shutdown complete")
	}()

	if err := srv.Serve(lis); err != nil {
		log.WithField("error", err).Fatal("Failed to serve")
	}
}

// validateSchema checks the tables every request path touches. Failures are
// logged as warnings so a new migration can roll out ahead of the binary.
func validateSchema(database *db.Connection) error {
	guard := db.NewSchemaGuard(database.DB)
	return guard.ValidateTables([]db.TableSchema{
		{
			Name: "themes",
			Columns: []db.ColumnType{
				{Name: "id", DataType: "bigint"},
				{Name: "slug", DataType: "varchar"},
				{Name: "parent_id", DataType: "bigint", Nullable: true},
				{Name: "content_count", DataType: "bigint"},
			},
		},
		{
			Name: "contents",
			Columns: []db.ColumnType{
				{Name: "id", DataType: "bigint"},
				{Name: "status", DataType: "varchar"},
				{Name: "teacher_id", DataType: "bigint"},
				{Name: "favorites_count", DataType: "bigint"},
			},
		},
		{
			Name: "content_assets",
			Columns: []db.ColumnType{
				{Name: "id", DataType: "bigint"},
				{Name: "content_id", DataType: "bigint"},
				{Name: "processing_status", DataType: "varchar"},
			},
		},
		{
			Name: "donations",
			Columns: []db.ColumnType{
				{Name: "id", DataType: "bigint"},
				{Name: "status", DataType: "varchar"},
				{Name: "receipt_no", DataType: "varchar"},
				{Name: "net_amount", DataType: "bigint"},
			},
		},
		{
			Name: "content_reports",
			Columns: []db.ColumnType{
				{Name: "id", DataType: "bigint"},
				{Name: "content_id", DataType: "bigint"},
				{Name: "status", DataType: "varchar"},
			},
		},
	})
}

func recordPoolStats(ctx context.Context, database *db.Connection, m *metrics.Metrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := database.DB.Stats()
			m.RecordDBPoolStats(stats.OpenConnections, stats.InUse, stats.Idle,
				stats.WaitCount, stats.WaitDuration)
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
