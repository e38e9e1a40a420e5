package main

import (
	"fmt"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/config"
	appHTTP "github.com/attendly/attendance-backend-go/internal/handler/http"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly/attendance-backend-go/internal/service/attendance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	transactor := postgresql.NewTransactor(db)
	punchEventRepo := postgresql.NewPunchEventRepository(db)
	overrideRepo := postgresql.NewAdherenceOverrideRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		punchEventRepo,
		overrideRepo,
		departmentRepo,
		attendanceService.EngineConfig{
			Location:        cfg.Engine.Location,
			StandardWorkday: cfg.Engine.StandardWorkday,
			Caps:            cfg.Engine.Caps(),
			AbsentMargin:    cfg.Engine.AbsentMargin,
		},
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(JWTService, attendanceHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
