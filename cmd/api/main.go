package main

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/leave-management-go/internal/config"
	appHTTP "github.com/cmlabs-hris/leave-management-go/internal/handler/http"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/leave-management-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/leave-management-go/internal/service/auth"
	serviceLeave "github.com/cmlabs-hris/leave-management-go/internal/service/leave"
	serviceUser "github.com/cmlabs-hris/leave-management-go/internal/service/user"
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

	userRepo := postgresql.NewUserRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	userService := serviceUser.NewUserService(userRepo, balanceRepo)
	leaveService := serviceLeave.NewLeaveService(db, leaveRequestRepo, balanceRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL)
	leaveHandler := appHTTP.NewLeaveHandler(leaveService)
	userHandler := appHTTP.NewUserHandler(userService)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		leaveHandler,
		userHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
