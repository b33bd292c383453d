package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/admitstats/admitstats/internal/config"
	"github.com/admitstats/admitstats/internal/domain/admission"
	"github.com/admitstats/admitstats/internal/domain/enrichment"
	"github.com/admitstats/admitstats/internal/domain/export"
	"github.com/admitstats/admitstats/internal/domain/quality"
	"github.com/admitstats/admitstats/internal/domain/reporting"
	"github.com/admitstats/admitstats/internal/platform/db"
	"github.com/admitstats/admitstats/internal/platform/middleware"
	"github.com/admitstats/admitstats/migrations"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "admitstats-server",
		Short: "Patient admission analytics API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(normalizeCmd())
	rootCmd.AddCommand(enrichCmd())
	rootCmd.AddCommand(qualityCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withPool loads config, opens a pool, and hands both to fn. Every one-shot
// command goes through here so connection setup stays in one place.
func withPool(fn func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admission analytics API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				migrator := db.NewMigrator(pool, migrations.Files)
				count, err := migrator.Up(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Printf("Applied %d migration(s) successfully.\n", count)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				migrator := db.NewMigrator(pool, migrations.Files)
				statuses, err := migrator.Status(ctx)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}

				fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
				fmt.Println("---------- ---------------------------------------- ---------- --------------------")
				for _, s := range statuses {
					status := "pending"
					appliedAt := ""
					if s.Applied {
						status = "applied"
						if s.AppliedAt != nil {
							appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
					}
					fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
				}
				return nil
			})
		},
	})

	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a patient admissions CSV into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				return fmt.Errorf("--file is required")
			}

			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				svc := admission.NewService(admission.NewRepoPG(pool))
				res, err := svc.SeedFile(ctx, file)
				if err != nil {
					return fmt.Errorf("seed failed: %w", err)
				}

				fmt.Printf("Loaded %d row(s) in batch %s.\n", res.RowsLoaded, res.BatchID)
				if len(res.Skipped) > 0 {
					fmt.Printf("Skipped %d row(s):\n", len(res.Skipped))
					for _, re := range res.Skipped {
						fmt.Printf("  row %d: %s\n", re.Row, re.Msg)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().String("file", "", "Path to the admissions CSV file")
	return cmd
}

func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Title-case patient names in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				svc := newEnrichmentService(pool)
				n, err := svc.NormalizeNames(ctx)
				if err != nil {
					return fmt.Errorf("normalize failed: %w", err)
				}
				fmt.Printf("Normalized %d patient name(s).\n", n)
				return nil
			})
		},
	}
}

func enrichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Normalize names and populate derived columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				svc := newEnrichmentService(pool)
				res, err := svc.Run(ctx)
				if err != nil {
					return fmt.Errorf("enrich failed: %w", err)
				}
				fmt.Printf("Normalized %d name(s), enriched %d row(s).\n", res.NamesNormalized, res.RowsEnriched)
				if res.UnbucketedAges > 0 {
					fmt.Printf("%d row(s) have ages outside every bucket.\n", res.UnbucketedAges)
				}
				return nil
			})
		},
	}
}

func qualityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quality",
		Short: "Run data quality checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				svc := quality.NewService(quality.NewRepoPG(pool))
				report, err := svc.Check(ctx)
				if err != nil {
					return fmt.Errorf("quality check failed: %w", err)
				}

				fmt.Printf("Total records:               %d\n", report.TotalRecords)
				fmt.Printf("Negative billing:            %d\n", report.NegativeBilling)
				fmt.Printf("Age out of range:            %d\n", report.AgeOutOfRange)
				fmt.Printf("Discharge before admission:  %d\n", report.DischargeBeforeAdmission)
				if report.Clean() {
					fmt.Println("No defects found.")
				}
				return nil
			})
		},
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [id]",
		Short: "Run the report catalog (or a single report) and print JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				svc := reporting.NewService(reporting.NewRepoPG(pool))

				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")

				if len(args) == 1 {
					res, err := svc.Run(ctx, args[0])
					if errors.Is(err, reporting.ErrUnknownQuery) {
						return fmt.Errorf("unknown report %q (list ids with the serve endpoint /api/v1/reports)", args[0])
					}
					if err != nil {
						return err
					}
					return enc.Encode(res)
				}

				return enc.Encode(svc.RunAll(ctx))
			})
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the flat admissions projection to a CSV or Parquet file",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			if format != "csv" && format != "parquet" {
				return fmt.Errorf("--format must be csv or parquet, got %q", format)
			}

			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				if out == "" {
					out = filepath.Join(cfg.ExportDir, "admissions_export."+format)
				}

				svc := export.NewService(export.NewRepoPG(pool))
				rows, err := svc.Rows(ctx)
				if err != nil {
					return fmt.Errorf("export failed: %w", err)
				}

				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}

				if format == "csv" {
					err = export.WriteCSV(f, rows)
				} else {
					err = export.WriteParquet(f, rows)
				}
				if err != nil {
					f.Close()
					return fmt.Errorf("export failed: %w", err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close %s: %w", out, err)
				}

				fmt.Printf("Exported %d row(s) to %s.\n", len(rows), out)
				return nil
			})
		},
	}
	cmd.Flags().String("format", "csv", "Output format: csv or parquet")
	cmd.Flags().String("out", "", "Output file path (defaults to EXPORT_DIR/admissions_export.<format>)")
	return cmd
}

func newEnrichmentService(pool *pgxpool.Pool) *enrichment.Service {
	repo := enrichment.NewRepoPG(pool)
	inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return db.RunInTx(ctx, pool, fn)
	}
	return enrichment.NewService(repo, inTx)
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if env := os.Getenv("ENV"); env == "development" || env == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		logger = logger.Level(lvl)
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// Services
	admissionSvc := admission.NewService(admission.NewRepoPG(pool))
	qualitySvc := quality.NewService(quality.NewRepoPG(pool))
	enrichmentSvc := newEnrichmentService(pool)
	reportingSvc := reporting.NewService(reporting.NewRepoPG(pool))
	exportSvc := export.NewService(export.NewRepoPG(pool))

	// Routes
	apiV1 := e.Group("/api/v1")

	// Rate limiting middleware
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Report and export handlers can hold a connection for a while on a
	// large table; anything past a minute is a stuck query, not a slow one.
	apiV1.Use(middleware.RequestTimeout(60 * time.Second))

	admission.NewHandler(admissionSvc).RegisterRoutes(apiV1)
	quality.NewHandler(qualitySvc).RegisterRoutes(apiV1)
	enrichment.NewHandler(enrichmentSvc).RegisterRoutes(apiV1)
	reporting.NewHandler(reportingSvc).RegisterRoutes(apiV1)
	export.NewHandler(exportSvc).RegisterRoutes(apiV1)

	// Health check
	e.GET("/healthz", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
