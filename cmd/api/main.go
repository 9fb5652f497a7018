package main

import (
	"fmt"
	"net/http"

	"github.com/staffdir/employee-backend-go/internal/config"
	appHTTP "github.com/staffdir/employee-backend-go/internal/handler/http"
	"github.com/staffdir/employee-backend-go/internal/pkg/database"
	"github.com/staffdir/employee-backend-go/internal/pkg/jwt"
	"github.com/staffdir/employee-backend-go/internal/repository/postgresql"
	authService "github.com/staffdir/employee-backend-go/internal/service/auth"
	employeeService "github.com/staffdir/employee-backend-go/internal/service/employee"
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

	employeeRepo := postgresql.NewEmployeeRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := authService.NewAuthService(userRepo, tokenRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	statsHandler := appHTTP.NewStatsHandler(employeeSvc)
	databaseHandler := appHTTP.NewDatabaseHandler(employeeSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		employeeHandler,
		statsHandler,
		databaseHandler,
		cfg.App.AllowedOrigins,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
