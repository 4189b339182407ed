package router

import (
	"net/http"
	"time"

	"statement-ledger/internal/events"
	"statement-ledger/internal/handlers"
	"statement-ledger/internal/middleware"
	"statement-ledger/internal/services"
	"statement-ledger/internal/store"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type Dependencies struct {
	Users      store.UserDirectory
	Statements store.StatementStore
	Publisher  events.Publisher
	JWTSecret  string
	TokenTTL   time.Duration
	RateLimit  float64
	RateBurst  int

	AllowedOrigins []string
	SlowRequest    time.Duration
}

func SetupRouter(deps Dependencies, logger zerolog.Logger) *mux.Router {
	userService := services.NewUserService(deps.Users, logger)
	authService := services.NewAuthService(deps.JWTSecret, deps.TokenTTL, logger)
	statementService := services.NewStatementService(deps.Users, deps.Statements, deps.Publisher, logger)
	balanceService := services.NewBalanceService(deps.Users, deps.Statements, logger)

	authHandler := handlers.NewAuthHandler(userService, authService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	statementHandler := handlers.NewStatementHandler(statementService, balanceService, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(deps.RateLimit), deps.RateBurst)
	slow := deps.SlowRequest
	if slow <= 0 {
		slow = time.Second
	}

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.PerformanceMonitoring(logger, slow))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(deps.AllowedOrigins))
	r.Use(rateLimiter.Middleware())

	api := r.PathPrefix("/api/v1").Subrouter()

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.RequestValidation())
	public.HandleFunc("/users", authHandler.Register).Methods("POST")
	public.HandleFunc("/sessions", authHandler.CreateSession).Methods("POST")

	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(middleware.Authentication(authService, logger))
	profile.HandleFunc("", userHandler.GetProfile).Methods("GET")

	statements := api.PathPrefix("/statements").Subrouter()
	statements.Use(middleware.Authentication(authService, logger))
	statements.Use(middleware.RequestValidation())
	statements.HandleFunc("/deposit", statementHandler.CreateStatement).Methods("POST")
	statements.HandleFunc("/withdraw", statementHandler.CreateStatement).Methods("POST")
	statements.HandleFunc("/transfers", statementHandler.CreateStatement).Methods("POST")
	statements.HandleFunc("/balance", statementHandler.GetBalance).Methods("GET")
	statements.HandleFunc("/balance/{sender_id}", statementHandler.GetTransferBalance).Methods("GET")
	statements.HandleFunc("/{statement_id}", statementHandler.GetStatementOperation).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
