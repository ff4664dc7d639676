package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string

	// UploadsDir is served under /uploads when blobs live on local disk
	UploadsDir string
}

type Handlers struct {
	Employee   EmployeeHandler
	Inventory  InventoryHandler
	Attendance AttendanceHandler
	Advance    AdvanceHandler
	Payroll    PayrollHandler
	File       FileHandler
	Events     EventHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// EventSource cannot set headers, so the stream also accepts ?jwt=
		r.With(
			jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery),
			middleware.AuthRequired,
		).Get("/events", h.Events.Stream)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Get("/by-code/{code}", h.Employee.GetEmployeeByCode)
				r.Get("/by-code/{code}/inventory", h.Employee.IssuedInventory)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.With(middleware.AdminOnly).Delete("/", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Route("/items", func(r chi.Router) {
					r.Get("/", h.Inventory.ListItems)
					r.Post("/", h.Inventory.CreateItem)
					r.Get("/low-stock", h.Inventory.ListLowStock)
					r.Route("/{code}", func(r chi.Router) {
						r.Get("/", h.Inventory.GetItem)
						r.Put("/", h.Inventory.UpdateItem)
						r.With(middleware.AdminOnly).Delete("/", h.Inventory.DeleteItem)
						r.Post("/images", h.Inventory.UploadItemImage)
						r.Get("/reconcile", h.Inventory.Reconcile)
						r.Get("/serial-units", h.Inventory.ListSerialUnits)
						r.Post("/serial-units", h.Inventory.CreateSerialUnit)
					})
				})

				r.Post("/issue", h.Inventory.IssueQuantity)
				r.Post("/return", h.Inventory.ReturnQuantity)
				r.With(middleware.AdminOnly).Post("/adjust", h.Inventory.Adjust)

				r.Route("/serial-units/{id}", func(r chi.Router) {
					r.Get("/", h.Inventory.GetSerialUnit)
					r.Post("/issue", h.Inventory.IssueSerial)
					r.Post("/return", h.Inventory.ReturnSerial)
					r.Post("/complete-service", h.Inventory.CompleteService)
				})

				r.Get("/transactions", h.Inventory.ListTransactions)
				r.Get("/assignment-state", h.Inventory.GetAssignmentState)
				r.Put("/assignment-state", h.Inventory.SaveAssignmentState)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Post("/", h.Attendance.Mark)
				r.Get("/summary", h.Attendance.Summary)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Attendance.Get)
					r.Put("/", h.Attendance.Update)
					r.With(middleware.AdminOnly).Delete("/", h.Attendance.Delete)
				})
			})

			r.Route("/leave-periods", func(r chi.Router) {
				r.Get("/", h.Attendance.ListLeavePeriods)
				r.Post("/", h.Attendance.CreateLeavePeriod)
				r.Get("/alerts", h.Attendance.LeaveAlerts)
				r.With(middleware.AdminOnly).Delete("/{id}", h.Attendance.DeleteLeavePeriod)
			})

			r.Route("/advances", func(r chi.Router) {
				r.Get("/", h.Advance.ListAdvances)
				r.Post("/", h.Advance.RecordAdvance)
				r.Get("/outstanding", h.Advance.Outstanding)
				r.Get("/deductions", h.Advance.ListDeductions)
				r.Put("/deductions", h.Advance.SetDeduction)
				r.With(middleware.AdminOnly).Delete("/{id}", h.Advance.DeleteAdvance)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/sheet", h.Payroll.ComputeSheet)
				r.Get("/line", h.Payroll.ComputeLine)
				r.Get("/entries", h.Payroll.GetEntry)
				r.Put("/entries", h.Payroll.UpsertEntry)
				r.Put("/entries/bulk", h.Payroll.BulkUpsertEntries)

				r.Route("/payments", func(r chi.Router) {
					r.Get("/", h.Payroll.ListPaymentStatuses)
					r.Get("/total", h.Payroll.TotalPaid)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/", h.Payroll.SetPaymentStatus)
						r.Post("/paid", h.Payroll.MarkPaid)
						r.Post("/unpaid", h.Payroll.MarkUnpaid)
					})
				})
			})

			r.Route("/files", func(r chi.Router) {
				r.Get("/", h.File.List)
				r.Post("/", h.File.Upload)
				r.Get("/{id}", h.File.Get)
				r.With(middleware.AdminOnly).Delete("/{id}", h.File.Delete)
			})
		})
	})
	return r
}
