package main

import (
	"fmt"
	"net/http"

	"github.com/cadencehr/payroll-backend-go/internal/config"
	appHTTP "github.com/cadencehr/payroll-backend-go/internal/handler/http"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/database"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/jwt"
	"github.com/cadencehr/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/cadencehr/payroll-backend-go/internal/service/payroll"
	salaryService "github.com/cadencehr/payroll-backend-go/internal/service/salary"
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
	auditRepo := postgresql.NewAuditRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(payrollRepo, salaryRepo, employeeRepo, attendanceRepo, userRepo, auditRepo, txManager)
	salarySvc := salaryService.NewSalaryService(salaryRepo, userRepo, auditRepo, txManager)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)

	router := appHTTP.NewRouter(JWTService, cfg.App.Env, payrollHandler, salaryHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server starting on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
