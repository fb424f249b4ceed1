package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/muhammadMilon/BloodBridge/internal/adapters/handler"
	"github.com/muhammadMilon/BloodBridge/internal/adapters/middleware"
	"github.com/muhammadMilon/BloodBridge/internal/adapters/repository"
	"github.com/muhammadMilon/BloodBridge/internal/config"
	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/services"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Connected to Redis successfully")

	userRepo := repository.NewUserSQLRepository(db)
	donationRepo := repository.NewDonationSQLRepository(db)
	historyRepo := repository.NewDonorHistorySQLRepository(db)

	authService := services.NewIdentityTokenService(cfg.JWKSURL, userRepo, cfg.JWTPrivateKey, redisClient)
	userService := services.NewUserService(userRepo)
	donationService := services.NewDonationService(donationRepo, userRepo)
	donorService := services.NewDonorService(userRepo, historyRepo)
	statsService := services.NewCachedStatsService(userRepo, donationRepo, redisClient)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, redisClient)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	donationHandler := handler.NewDonationHandler(donationService)
	donorHandler := handler.NewDonorHandler(donorService)
	statsHandler := handler.NewStatsHandler(statsService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	anyUser := []string{
		string(domain.RoleAdmin),
		string(domain.RoleDonor),
		string(domain.RoleReceiver),
		string(domain.RoleVolunteer),
	}
	adminOnly := []string{string(domain.RoleAdmin)}
	adminOrVolunteer := []string{string(domain.RoleAdmin), string(domain.RoleVolunteer)}

	mux := http.NewServeMux()

	// Health endpoints (Kubernetes/OpenShift compatible)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.Handle("POST /logout", authMiddleware.RequireRole(anyUser, authHandler.Logout))

	// Users
	mux.HandleFunc("POST /add-user", userHandler.AddUser)
	mux.Handle("GET /get-user-role", authMiddleware.RequireRole(anyUser, userHandler.GetUserRole))
	mux.Handle("GET /get-user-status", authMiddleware.RequireRole(anyUser, userHandler.GetUserStatus))
	mux.Handle("GET /get-user", authMiddleware.RequireRole(anyUser, userHandler.GetUser))
	mux.Handle("PATCH /update-user/{id}", authMiddleware.RequireRole(anyUser, userHandler.UpdateUser))
	mux.Handle("GET /get-users", authMiddleware.RequireRole(adminOnly, userHandler.GetUsers))
	mux.Handle("GET /get-users-for-volunteer", authMiddleware.RequireRole(adminOrVolunteer, userHandler.GetUsers))
	mux.Handle("PATCH /update-role", authMiddleware.RequireRole(adminOnly, userHandler.UpdateRole))
	mux.Handle("PATCH /update-status", authMiddleware.RequireRole(adminOnly, userHandler.UpdateStatus))

	// Donation requests
	mux.HandleFunc("POST /create-donation-request", donationHandler.CreateRequest)
	mux.Handle("GET /my-donation-request", authMiddleware.RequireRole(anyUser, donationHandler.MyRequests))
	mux.Handle("GET /all-donation-requests", authMiddleware.RequireRole(anyUser, donationHandler.AllRequests))
	mux.HandleFunc("GET /all-donation-requests-public", donationHandler.PublicRequests)
	mux.Handle("GET /details/{id}", authMiddleware.RequireRole(anyUser, donationHandler.Details))
	mux.Handle("PUT /update-donation-request/{id}", authMiddleware.RequireRole(anyUser, donationHandler.UpdateRequest))
	mux.Handle("PATCH /donation-status", authMiddleware.RequireRole(anyUser, donationHandler.UpdateStatus))
	mux.Handle("DELETE /delete-request/{id}", authMiddleware.RequireRole(anyUser, donationHandler.DeleteRequest))

	// Donors and history
	mux.HandleFunc("GET /search-donors", donorHandler.Search)
	mux.HandleFunc("GET /get-donors", donorHandler.GetDonors)
	mux.Handle("POST /add-donor", authMiddleware.RequireRole(adminOrVolunteer, donorHandler.AddDonor))
	mux.HandleFunc("GET /donor-history", donorHandler.History)
	mux.Handle("GET /donor-history/{email}", authMiddleware.RequireRole(anyUser, donorHandler.HistoryByEmail))
	mux.Handle("GET /find-donor", authMiddleware.RequireRole(anyUser, donorHandler.FindDonor))

	// Public stats
	mux.HandleFunc("GET /public-stats", statsHandler.PublicStats)

	chain := middleware.CORSMiddleware(cfg.AllowedOrigins)(middleware.MetricsMiddleware(mux))

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, chain); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
