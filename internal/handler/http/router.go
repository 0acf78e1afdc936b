package http

import (
	"log/slog"
	"os"

	"github.com/cadencehr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(JWTService jwt.Service, env string, payrollHandler PayrollHandler, salaryHandler SalaryHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "cadencehr-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payruns", func(r chi.Router) {
				r.Get("/", payrollHandler.ListPayruns)
				r.Post("/", payrollHandler.CreatePayrun)

				r.Route("/{id}", func(r chi.Router) {
					r.Post("/compute", payrollHandler.ComputePayroll)
					r.Post("/validate", payrollHandler.ValidatePayrun)
					r.Get("/payslips", payrollHandler.GetPayrunPayslips)
				})
			})

			r.Get("/payslips/{id}", payrollHandler.GetPayslip)

			r.Route("/employees/{employeeId}", func(r chi.Router) {
				r.Get("/payslips", payrollHandler.GetEmployeePayslips)
				r.Get("/salary-structure", salaryHandler.GetStructure)
				r.Put("/salary-structure", salaryHandler.UpsertStructure)
			})

			r.Get("/salary-structures", salaryHandler.ListStructures)

			r.Route("/payroll-settings", func(r chi.Router) {
				r.Get("/", payrollHandler.GetSettings)
				r.Put("/", payrollHandler.UpdateSettings)
			})
		})
	})

	return r
}
