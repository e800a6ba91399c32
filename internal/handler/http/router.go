package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/tausif-btb/cbl-erp/internal/domain/user"
	"github.com/tausif-btb/cbl-erp/internal/handler/http/middleware"
	"github.com/tausif-btb/cbl-erp/internal/pkg/jwt"
)

type RouterConfig struct {
	AppName        string
	AppEnv         string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("env", cfg.AppEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", employeeHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleSuperAdmin, user.RoleAdmin, user.RoleHR))
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleSuperAdmin, user.RoleAdmin))
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/employee/{employeeId}", attendanceHandler.GetByEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleSuperAdmin, user.RoleAdmin, user.RoleHR))
					r.Get("/summary", reportHandler.AttendanceSummary)
					r.Get("/summary/export", reportHandler.ExportAttendanceSummary)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/{id}", payrollHandler.Get)
				r.Get("/employee/{employeeId}", payrollHandler.GetByEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleSuperAdmin, user.RoleAdmin, user.RoleAccounts))
					r.Post("/", payrollHandler.Create)
					r.Patch("/{id}/status", payrollHandler.UpdateStatus)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleSuperAdmin, user.RoleAdmin, user.RoleAccounts, user.RoleHR))
					r.Get("/", payrollHandler.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleSuperAdmin, user.RoleAdmin))
					r.Delete("/{id}", payrollHandler.Delete)
				})
			})
		})
	})

	return r
}
