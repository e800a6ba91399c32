package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/tausif-btb/cbl-erp/internal/config"
	appHTTP "github.com/tausif-btb/cbl-erp/internal/handler/http"
	"github.com/tausif-btb/cbl-erp/internal/pkg/clock"
	"github.com/tausif-btb/cbl-erp/internal/pkg/cron"
	"github.com/tausif-btb/cbl-erp/internal/pkg/database"
	"github.com/tausif-btb/cbl-erp/internal/pkg/email"
	"github.com/tausif-btb/cbl-erp/internal/pkg/jwt"
	"github.com/tausif-btb/cbl-erp/internal/repository/postgresql"
	attendanceService "github.com/tausif-btb/cbl-erp/internal/service/attendance"
	authService "github.com/tausif-btb/cbl-erp/internal/service/auth"
	employeeService "github.com/tausif-btb/cbl-erp/internal/service/employee"
	payrollService "github.com/tausif-btb/cbl-erp/internal/service/payroll"
	reportService "github.com/tausif-btb/cbl-erp/internal/service/report"
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

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	clk := clock.New()

	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, clk)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, clk)
	reportSvc := reportService.NewReportService(reportRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        "cbl-erp",
			AppEnv:         cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		payrollHandler,
		reportHandler,
	)

	if cfg.Alerts.Enabled {
		emailService, err := email.NewEmailService(cfg.SMTP)
		if err != nil {
			log.Fatal("Failed to initialize email service:", err)
		}

		scheduler := cron.NewScheduler()
		alertJobs := cron.NewAlertJobs(employeeRepo, userRepo, emailService, clk, cfg.SMTP.HRInbox)
		alertJobs.RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
