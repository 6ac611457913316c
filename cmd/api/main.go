package main

import (
	"fmt"
	"net/http"

	"github.com/backoffice-th/backoffice-backend-go/internal/config"
	appHTTP "github.com/backoffice-th/backoffice-backend-go/internal/handler/http"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/database"
	"github.com/backoffice-th/backoffice-backend-go/internal/pkg/jwt"
	"github.com/backoffice-th/backoffice-backend-go/internal/repository/postgresql"
	attendanceService "github.com/backoffice-th/backoffice-backend-go/internal/service/attendance"
	payrollService "github.com/backoffice-th/backoffice-backend-go/internal/service/payroll"
	"github.com/backoffice-th/backoffice-backend-go/internal/service/sequence"
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

	documentRepo := postgresql.NewDocumentRepository(db)
	counterRepo := postgresql.NewCounterRepository(db)
	numberSettingsRepo := postgresql.NewNumberSettingsRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	hrSettingsRepo := postgresql.NewHRSettingsRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)

	txRunner := postgresql.NewTxRunner(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	documentService := sequence.NewSequenceService(txRunner, documentRepo, counterRepo, numberSettingsRepo)
	attendanceSvc := attendanceService.NewAttendanceService(employeeRepo, punchRepo, adjustmentRepo)
	payrollSvc := payrollService.NewPayrollService(
		employeeRepo,
		hrSettingsRepo,
		holidayRepo,
		leaveRequestRepo,
		punchRepo,
		adjustmentRepo,
		payslipRepo,
	)

	documentHandler := appHTTP.NewDocumentHandler(documentService, jwtService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, jwtService)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(jwtService, documentHandler, attendanceHandler, payrollHandler, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
