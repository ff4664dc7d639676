package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/guardforce-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/repository/postgresql"
	advanceService "github.com/cmlabs-hris/guardforce-backend-go/internal/service/advance"
	attendanceService "github.com/cmlabs-hris/guardforce-backend-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/guardforce-backend-go/internal/service/employee"
	fileService "github.com/cmlabs-hris/guardforce-backend-go/internal/service/file"
	inventoryService "github.com/cmlabs-hris/guardforce-backend-go/internal/service/inventory"
	payrollService "github.com/cmlabs-hris/guardforce-backend-go/internal/service/payroll"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		App:     "guardforce-api",
		Version: version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgresql.ApplySchema(ctx, db); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		log.Info("database schema applied")
	}

	fileStorage, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	txManager := postgresql.NewTxManager(db)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	inventoryRepo := postgresql.NewInventoryRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leavePeriodRepo := postgresql.NewLeavePeriodRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	fileRepo := postgresql.NewFileRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fileSvc := fileService.NewFileService(fileRepo, fileStorage, cfg.Storage.PresignExpiration)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	inventorySvc := inventoryService.NewInventoryService(txManager, inventoryRepo, employeeRepo, fileSvc)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, leavePeriodRepo, employeeRepo)
	advanceSvc := advanceService.NewAdvanceService(advanceRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(txManager, payrollRepo, employeeRepo, advanceRepo, attendanceSvc)

	hub := sse.NewHub()
	routerCfg := appHTTP.RouterConfig{
		Logger:         log,
		AllowedOrigins: []string{cfg.App.FrontendURL},
	}
	if fileStorage.Kind() == storage.KindLocal {
		routerCfg.UploadsDir = cfg.Storage.BasePath
	}
	router := appHTTP.NewRouter(routerCfg, JWTService, appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc, inventorySvc),
		Inventory:  appHTTP.NewInventoryHandler(inventorySvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, cfg.LeaveAlert.LookaheadDays),
		Advance:    appHTTP.NewAdvanceHandler(advanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		File:       appHTTP.NewFileHandler(fileSvc),
		Events:     appHTTP.NewEventHandler(hub),
	})

	scheduler := cron.NewScheduler(log)
	leaveAlerts := cron.NewLeaveAlertJobs(attendanceSvc, cfg.LeaveAlert.LookaheadDays, cfg.LeaveAlert.Interval, log, hub)
	if err := leaveAlerts.RegisterJobs(scheduler); err != nil {
		return fmt.Errorf("failed to register jobs: %w", err)
	}
	lowStock := cron.NewLowStockJobs(inventorySvc, cfg.LowStock.Interval, log, hub)
	if err := lowStock.RegisterJobs(scheduler); err != nil {
		return fmt.Errorf("failed to register jobs: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", server.Addr, "storage", fileStorage.Kind())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newStorage(ctx context.Context, cfg config.StorageConfig) (storage.FileStorage, error) {
	switch cfg.Type {
	case config.StorageTypeLocal:
		local, err := storage.NewLocalStorage(cfg.BasePath, cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return local, nil
	case config.StorageTypeObjectStore:
		s3Storage, err := storage.NewS3Storage(ctx, storage.S3Config{
			Endpoint:          cfg.Endpoint,
			Region:            cfg.Region,
			Bucket:            cfg.Bucket,
			AccessKey:         cfg.AccessKey,
			SecretKey:         cfg.SecretKey,
			UsePathStyle:      cfg.UsePathStyle,
			PresignExpiration: cfg.PresignExpiration,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize object storage: %w", err)
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare bucket: %w", err)
		}
		return s3Storage, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %q", cfg.Type)
	}
}
