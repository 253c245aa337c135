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

	"github.com/cmlabs-hris/hris-dashboard-go/internal/config"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/repository/postgresql/migrations"
	attendanceService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/employee"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hris-dashboard-go/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

const shutdownTimeout = 15 * time.Second

type repositories struct {
	employees  employee.Directory
	attendance attendance.AttendanceRepository
	leave      leave.LeaveRequestRepository
	payroll    payroll.PayrollRepository
	transactor employee.Transactor
	close      func()
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-dashboard"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := clock.Real()
	location := cfg.Location()

	repos, err := openRepositories(ctx, cfg, c)
	if err != nil {
		return err
	}
	defer repos.close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	employeeSvc := employeeService.NewEmployeeService(
		repos.employees,
		repos.transactor,
		fileService,
		c,
		location,
		cfg.Policy.EmployeeDelete,
		repos.attendance,
		repos.leave,
		repos.payroll,
	)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.employees, repos.employees, fileService, c, location)
	leaveSvc := leaveService.NewLeaveService(repos.leave, repos.employees, repos.employees, c, location, cfg.Policy.LeaveAllowRedecision)
	payrollSvc := payrollService.NewPayrollService(repos.payroll, repos.employees, repos.employees, fileService, c, location)
	dashboardSvc := dashboardService.NewDashboardService(employeeSvc, attendanceSvc, leaveSvc, payrollSvc, c, location)

	var jwtService jwt.Service
	if cfg.JWT.Secret != "" {
		jwtService, err = jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
		if err != nil {
			return err
		}
	} else {
		slog.Warn("JWT_SECRET_KEY is empty, API runs without authentication")
	}

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		JWTService:     jwtService,
		AllowedOrigins: []string{cfg.App.FrontendURL},
		UploadsDir:     cfg.Storage.BasePath,
	}, appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, location),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	})

	scheduler := cron.NewScheduler()
	if cfg.Jobs.AbsenceEnabled {
		cron.NewAttendanceJobs(attendanceSvc, c).RegisterJobs(scheduler, cfg.Jobs.AbsenceInterval)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Storage.Driver, "timezone", location.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, c clock.Clock) (repositories, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return repositories{}, fmt.Errorf("failed to connect to database: %w", err)
		}
		if cfg.Database.RunMigrations {
			if err := database.Migrate(ctx, db, migrations.FS); err != nil {
				db.Close()
				return repositories{}, fmt.Errorf("failed to run migrations: %w", err)
			}
		}
		return repositories{
			employees:  postgresql.NewEmployeeRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			leave:      postgresql.NewLeaveRequestRepository(db),
			payroll:    postgresql.NewPayrollRepository(db),
			transactor: postgresql.NewTransactor(db),
			close:      db.Close,
		}, nil
	default:
		return repositories{
			employees:  memory.NewEmployeeRepository(c),
			attendance: memory.NewAttendanceRepository(c),
			leave:      memory.NewLeaveRequestRepository(c),
			payroll:    memory.NewPayrollRepository(c),
			transactor: memory.NewTransactor(),
			close:      func() {},
		}, nil
	}
}
