package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/nominapy/payroll-backend-go/internal/config"
	"github.com/nominapy/payroll-backend-go/internal/handler/http/middleware"
	"github.com/nominapy/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
	companyHandler CompanyHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/{id}", attendanceHandler.Get)

				// Chiefs review lateness and overtime
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireChief)
					r.Get("/", attendanceHandler.List)
					r.Patch("/{id}/late/approve", attendanceHandler.ApproveLate)
					r.Patch("/{id}/late/refuse", attendanceHandler.RefuseLate)
					r.Patch("/{id}/overtime/approve", attendanceHandler.ApproveOvertime)
					r.Patch("/{id}/overtime/refuse", attendanceHandler.RefuseOvertime)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/", leaveHandler.History)
				r.Get("/balance", leaveHandler.Balance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireChief)
					r.Post("/{id}/approve", leaveHandler.Approve)
					r.Post("/{id}/refuse", leaveHandler.Refuse)
				})
			})

			r.Route("/allocations", func(r chi.Router) {
				r.Use(middleware.RequireChief)
				r.Get("/", leaveHandler.ListAllocations)
				r.Post("/generate", leaveHandler.GenerateAllocations)
				r.Post("/liquidate", leaveHandler.LiquidateAll)
				r.Post("/{id}/liquidate", leaveHandler.Liquidate)
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Use(middleware.RequireChief)
				r.Get("/", payrollHandler.ListPayslips)
				r.Post("/compute", payrollHandler.ComputePayslip)
				r.Get("/{id}", payrollHandler.GetPayslip)
				r.Get("/{id}/worked-days", payrollHandler.GetWorkedDays)
			})

			r.Route("/payslip-runs", func(r chi.Router) {
				r.Use(middleware.RequireChief)
				r.Post("/", payrollHandler.CreateRun)
				r.Post("/{id}/compute", payrollHandler.ComputeRun)
				r.Get("/{id}/exports/ips", reportHandler.IPSText)
				r.Get("/{id}/exports/bank-transfer", reportHandler.BankTransferText)
				r.Get("/{id}/exports/pivot", reportHandler.PayslipPivot)
				r.Get("/{id}/exports/monthly-grid", reportHandler.MonthlyGrid)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireChief)
				r.Post("/annual-summary", reportHandler.AnnualSummary)
			})

			r.Route("/companies", func(r chi.Router) {
				r.Get("/{id}", companyHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireChief)
					r.Put("/{id}/payroll-settings", companyHandler.UpdatePayrollSettings)
				})
			})
		})
	})

	return r
}
