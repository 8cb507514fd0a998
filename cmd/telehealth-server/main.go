package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/waspito/telehealth/internal/config"
	"github.com/waspito/telehealth/internal/domain/consult"
	"github.com/waspito/telehealth/internal/domain/directory"
	"github.com/waspito/telehealth/internal/domain/pharmacy"
	"github.com/waspito/telehealth/internal/domain/triage"
	"github.com/waspito/telehealth/internal/platform/auth"
	"github.com/waspito/telehealth/internal/platform/db"
	"github.com/waspito/telehealth/internal/platform/middleware"
	"github.com/waspito/telehealth/internal/platform/notification"
	"github.com/waspito/telehealth/internal/platform/ws"

	"github.com/google/uuid"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "telehealth-server",
		Short: "Symptom triage and consultation API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
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

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.InMemory() {
				return fmt.Errorf("DATABASE_URL is not set; migrations require a database")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.InMemory() {
				return fmt.Errorf("DATABASE_URL is not set; migrations require a database")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
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
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the doctor roster with sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.InMemory() {
				return fmt.Errorf("DATABASE_URL is not set; the in-memory store is seeded at startup")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := directory.Seed(ctx, directory.NewDoctorRepoPG(pool)); err != nil {
				return fmt.Errorf("seed doctors: %w", err)
			}
			fmt.Println("Doctor roster seeded.")
			return nil
		},
	}
}

// practitionerSource adapts the directory service to the consult package's
// PractitionerSource interface, avoiding a cross-domain import.
type practitionerSource struct {
	dir *directory.Service
}

func (p *practitionerSource) Practitioner(ctx context.Context, id uuid.UUID) (consult.Practitioner, error) {
	d, err := p.dir.GetDoctor(ctx, id)
	if err != nil {
		return consult.Practitioner{}, err
	}
	return consult.Practitioner{
		ID:           d.ID,
		Name:         d.Name,
		HospitalName: d.HospitalName,
		Online:       d.IsOnline,
	}, nil
}

// entryNotifier adapts the alert dispatcher to the triage package's
// Notifier interface.
type entryNotifier struct {
	dispatcher *notification.Dispatcher
	recipient  string
}

func (n *entryNotifier) NotifyNewEntry(ctx context.Context, e *triage.SymptomEntry) error {
	_, err := n.dispatcher.Dispatch(ctx, n.recipient, notification.TemplateSymptomEntry, map[string]string{
		"patient_name": e.PatientName,
		"phone":        e.Phone,
		"symptoms":     e.Symptoms,
		"result":       e.Result,
	})
	return err
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
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

	// Storage: Postgres when DATABASE_URL is set, in-memory otherwise.
	ctx := context.Background()
	var pool *pgxpool.Pool
	var entryRepo triage.EntryRepository
	var doctorRepo directory.DoctorRepository
	if cfg.InMemory() {
		logger.Info().Msg("DATABASE_URL not set; using in-memory storage")
		entryRepo = triage.NewEntryRepoMem()
		doctorRepo = directory.NewDoctorRepoMem()
	} else {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
		entryRepo = triage.NewEntryRepoPG(pool)
		doctorRepo = directory.NewDoctorRepoPG(pool)
	}

	if cfg.SeedDoctors {
		if err := directory.Seed(ctx, doctorRepo); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed doctor roster")
		}
	}

	// Doctor alerts
	dispatcher := notification.NewDispatcher(
		&notification.LogSender{Logger: logger},
		notification.NewTemplateEngine(),
		2,
	)
	notifier := &entryNotifier{dispatcher: dispatcher, recipient: "on-call"}

	// Services
	triageSvc := triage.NewService(entryRepo, triage.DefaultRules(), notifier, cfg.NotifyOnTriage, logger)
	dirSvc := directory.NewService(doctorRepo, logger)
	consultSvc := consult.NewService(&practitionerSource{dir: dirSvc}, logger)
	catalog := pharmacy.NewCatalog()

	// Real-time availability broadcasts
	hub := ws.NewHub(logger)
	dirSvc.AddListener(func(online []*directory.Doctor) {
		hub.Broadcast(ws.TopicAvailability, ws.NewEvent("availability.changed", ws.TopicAvailability, online))
	})

	// Availability simulator
	sim := directory.NewSimulator(dirSvc, cfg.AvailabilityInterval(), logger)
	sim.Start(ctx)
	defer sim.Stop()

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{Secret: []byte(cfg.JWTSecret)}))
	}

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	// API routes
	apiV1 := e.Group("/api/v1")
	triage.NewHandler(triageSvc).RegisterRoutes(apiV1)
	directory.NewHandler(dirSvc).RegisterRoutes(apiV1)
	consult.NewHandler(consultSvc).RegisterRoutes(apiV1)
	pharmacy.NewHandler(catalog).RegisterRoutes(apiV1)
	ws.NewHandler(hub).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	sim.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
