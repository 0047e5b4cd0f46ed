package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/PolicyEngine/Autumn-budget-local-area/config"
	"github.com/PolicyEngine/Autumn-budget-local-area/dataset"
	"github.com/PolicyEngine/Autumn-budget-local-area/handlers"
	"github.com/PolicyEngine/Autumn-budget-local-area/middleware"
)

type HealthResponse struct {
	Status         string `json:"status"`
	DataStatus     string `json:"data_status"`
	Constituencies int    `json:"constituencies"`
	Households     int    `json:"households"`
	Error          string `json:"error,omitempty"`
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status: "ok",
	}

	if err := config.CheckDataHealth(); err != nil {
		response.Status = "degraded"
		response.DataStatus = "empty"
		response.Error = err.Error()
	} else {
		response.DataStatus = "loaded"
		response.Constituencies = len(config.Data.Constituencies())
		response.Households = len(config.Data.HouseholdRows)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func main() {
	startTime := time.Now()
	log.Printf("Starting server initialization at %s", startTime.Format(time.RFC3339))

	// Load environment variables first
	if err := config.LoadEnv(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	port := config.GetPort()

	// Load the static datasets. A failed load is not fatal: the server
	// starts with empty row sets and selectors render empty until the data
	// files appear.
	log.Println("Loading budget impact datasets...")
	if err := config.InitDataWithRetry(3); err != nil {
		log.Printf("Warning: %v — starting with empty datasets", err)
		config.Data = dataset.NewStore(nil, nil)
	} else {
		log.Println("Datasets loaded successfully")
	}

	config.InitCache()

	r := mux.NewRouter()

	// CORS configuration
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: config.GetAllowedOrigins(),
		AllowedMethods: []string{
			"GET", "OPTIONS",
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"Origin",
		},
		MaxAge: 86400,
	})

	// Apply middlewares in order
	r.Use(corsHandler.Handler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CompressHandler)

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	registerRoutes(api)
	log.Println("Routes registered successfully")

	// Create server with optimized timeouts
	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + port,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	log.Printf("Server is running at http://localhost:%s", port)
	log.Printf("Health check endpoint: http://localhost:%s/api/v1/health", port)

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func registerRoutes(api *mux.Router) {
	// Catalog routes
	api.HandleFunc("/policies", handlers.GetPolicies).Methods("GET", "OPTIONS")
	api.HandleFunc("/constituencies", handlers.GetConstituencies).Methods("GET", "OPTIONS")

	// Impact routes — all decode SelectionState from the query string
	api.HandleFunc("/impact/summary", handlers.GetImpactSummary).Methods("GET", "OPTIONS")
	api.HandleFunc("/impact/family-types", handlers.GetFamilyTypeImpact).Methods("GET", "OPTIONS")
	api.HandleFunc("/impact/timeline", handlers.GetImpactTimeline).Methods("GET", "OPTIONS")
	api.HandleFunc("/impact/income-distribution", handlers.GetIncomeDistribution).Methods("GET", "OPTIONS")
	api.HandleFunc("/impact/scatter", handlers.GetImpactScatter).Methods("GET", "OPTIONS")
	api.HandleFunc("/impact/map", handlers.GetImpactMap).Methods("GET", "OPTIONS")

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
	api.HandleFunc("/health/detailed", healthCheck).Methods("GET")
}
