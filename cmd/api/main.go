package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nominapy/payroll-backend-go/internal/config"
	appHTTP "github.com/nominapy/payroll-backend-go/internal/handler/http"
	"github.com/nominapy/payroll-backend-go/internal/pkg/cron"
	"github.com/nominapy/payroll-backend-go/internal/pkg/database"
	"github.com/nominapy/payroll-backend-go/internal/pkg/jwt"
	"github.com/nominapy/payroll-backend-go/internal/pkg/storage"
	"github.com/nominapy/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/nominapy/payroll-backend-go/internal/service/attendance"
	authService "github.com/nominapy/payroll-backend-go/internal/service/auth"
	companyService "github.com/nominapy/payroll-backend-go/internal/service/company"
	"github.com/nominapy/payroll-backend-go/internal/service/file"
	leaveService "github.com/nominapy/payroll-backend-go/internal/service/leave"
	payrollService "github.com/nominapy/payroll-backend-go/internal/service/payroll"
	reportService "github.com/nominapy/payroll-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	// Repositories
	employeeRepo := postgresql.NewEmployeeRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	allocationRepo := postgresql.NewLeaveAllocationRepository(db)
	workEntryTypeRepo := postgresql.NewWorkEntryTypeRepository(db)
	workEntryRepo := postgresql.NewWorkEntryRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	// Services
	fileSvc := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	companySvc := companyService.NewCompanyService(companyRepo, leaveTypeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo, employeeRepo, contractRepo, calendarRepo, companyRepo, cfg.Payroll,
	)
	requestSvc := leaveService.NewRequestService(
		db, leaveRequestRepo, allocationRepo, leaveTypeRepo, fileSvc,
	)
	allocationSvc := leaveService.NewAllocationService(
		db, allocationRepo, leaveRequestRepo, leaveTypeRepo, employeeRepo, companyRepo,
	)
	payslipSvc := payrollService.NewPayslipService(
		db, payslipRepo, workEntryRepo, workEntryTypeRepo, attendanceRepo,
		leaveRequestRepo, employeeRepo, contractRepo, calendarRepo, cfg.Payroll,
	)
	reportSvc := reportService.NewReportService(
		payslipRepo, workEntryRepo, employeeRepo, companyRepo,
	)

	// Handlers
	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(requestSvc, allocationSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payslipSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)

	router := appHTTP.NewRouter(
		cfg, jwtService,
		authHandler, attendanceHandler, leaveHandler,
		payrollHandler, reportHandler, companyHandler,
	)

	// Background jobs
	scheduler := cron.NewScheduler()
	cron.NewAllocationJobs(allocationSvc, db).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
