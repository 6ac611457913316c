package http

import (
	"log/slog"
	"os"

	"github.com/backoffice-th/backoffice-backend-go/internal/handler/http/middleware"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(jwtService jwt.Service, documentHandler DocumentHandler, attendanceHandler AttendanceHandler, payrollHandler PayrollHandler, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "backoffice-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/documents", func(r chi.Router) {
				r.Post("/", documentHandler.Create)
				r.Get("/", documentHandler.List)
				r.Get("/lookup", documentHandler.Lookup)
				r.Get("/{id}", documentHandler.GetByID)
				r.Patch("/{id}/status", documentHandler.UpdateStatus)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punches", attendanceHandler.RecordPunch)
				r.Put("/adjustments", attendanceHandler.UpsertAdjustment)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/metrics/preview", payrollHandler.PreviewMetrics)
				r.Post("/payslips", payrollHandler.GeneratePayslip)
				r.Get("/payslips", payrollHandler.ListPayslips)
				r.Get("/payslips/{id}", payrollHandler.GetPayslip)
				r.Get("/settings", payrollHandler.GetHRSettings)
			})
		})
	})
	return r
}
