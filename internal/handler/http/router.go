package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions configures the outer shell. A nil JWTService leaves the API open.
type RouterOptions struct {
	Logger         *slog.Logger
	JWTService     jwt.Service
	AllowedOrigins []string
	UploadsDir     string
}

type Handlers struct {
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
}

func NewRouter(opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if opts.JWTService != nil {
			r.Use(jwtauth.Verifier(opts.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
		}

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Post("/", h.Employee.CreateEmployee)
			r.Get("/search", h.Employee.SearchEmployees)
			r.Get("/stats", h.Employee.GetStats)
			r.Get("/departments", h.Employee.GetDepartments)
			r.Get("/roles", h.Employee.GetRoles)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Employee.GetEmployee)
				r.Put("/", h.Employee.UpdateEmployee)
				r.Delete("/", h.Employee.DeleteEmployee)
				r.Post("/avatar", h.Employee.UploadAvatar)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.List)
			r.Post("/clock-in", h.Attendance.ClockIn)
			r.Post("/clock-out", h.Attendance.ClockOut)
			r.Post("/break", h.Attendance.RecordBreak)
			r.Get("/today", h.Attendance.GetToday)
			r.Get("/stats", h.Attendance.GetStats)
			r.Get("/status/{employeeID}", h.Attendance.GetCurrentStatus)
			r.Get("/export", h.Attendance.Export)
			r.Post("/absences", h.Attendance.MarkAbsences)
			r.Get("/{id}", h.Attendance.Get)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Get("/", h.Leave.ListRequests)
			r.Post("/", h.Leave.CreateRequest)
			r.Get("/pending", h.Leave.GetPending)
			r.Get("/stats", h.Leave.GetStats)
			r.Get("/balance/{employeeID}", h.Leave.GetBalance)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Leave.GetRequest)
				r.Put("/", h.Leave.UpdateRequest)
				r.Delete("/", h.Leave.DeleteRequest)
				r.Post("/approve", h.Leave.ApproveRequest)
				r.Post("/reject", h.Leave.RejectRequest)
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", h.Payroll.List)
			r.Post("/", h.Payroll.Create)
			r.Get("/current", h.Payroll.GetCurrentMonth)
			r.Get("/stats", h.Payroll.GetStats)
			r.Get("/months", h.Payroll.GetAvailableMonths)
			r.Get("/export", h.Payroll.Export)
			r.Get("/history/{employeeID}", h.Payroll.GetSalaryHistory)
			r.Get("/payslips/{employeeID}/{month}", h.Payroll.GetPayslip)
			r.Get("/payslips/{employeeID}/{month}/pdf", h.Payroll.DownloadPayslip)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Payroll.Get)
				r.Put("/", h.Payroll.Update)
				r.Delete("/", h.Payroll.Delete)
			})
		})

		r.Get("/dashboard", h.Dashboard.GetDashboard)
	})
	return r
}
