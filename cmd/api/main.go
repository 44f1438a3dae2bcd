package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/calgal7-del/1040-paydays/pkg/api/chartview"
	"github.com/calgal7-del/1040-paydays/pkg/api/forecast"
	"github.com/calgal7-del/1040-paydays/pkg/api/middleware"
	"github.com/calgal7-del/1040-paydays/pkg/api/plans"
	"github.com/calgal7-del/1040-paydays/pkg/api/share"
	"github.com/calgal7-del/1040-paydays/pkg/core/store"
)

type serverConfig struct {
	Port               int    `yaml:"port"`
	RedisAddr          string `yaml:"redis_addr"`
	CacheTTLMinutes    int    `yaml:"cache_ttl_minutes"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

func loadConfig() serverConfig {
	var cfg serverConfig
	data, _ := ioutil.ReadFile("config/server.yaml")
	yaml.Unmarshal(data, &cfg)

	if cfg.Port <= 0 {
		cfg.Port = 8080
	}
	if cfg.CacheTTLMinutes <= 0 {
		cfg.CacheTTLMinutes = 15
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 120
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadConfig()
	ctx := context.Background()

	// Plans live in Postgres when DATABASE_URL points at one; otherwise
	// they stay in process memory and vanish on restart.
	var planRepo store.PlanRepo
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[STORE] Postgres unavailable (%v), keeping plans in memory\n", err)
		planRepo = store.NewMemoryPlanRepo()
	} else {
		pg := store.NewPGPlanRepo()
		if err := pg.EnsureSchema(ctx); err != nil {
			fmt.Printf("[STORE] Schema setup failed (%v), keeping plans in memory\n", err)
			planRepo = store.NewMemoryPlanRepo()
		} else {
			fmt.Println("[STORE] Postgres connected, plans persisted")
			planRepo = pg
			defer store.Close()
		}
	}

	// Same fallback story for the result cache.
	var cache store.ResultCache
	if cfg.RedisAddr != "" {
		rc := store.NewRedisResultCache(cfg.RedisAddr)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			fmt.Printf("[CACHE] Redis unavailable (%v), caching results in memory\n", err)
			cache = store.NewMemoryResultCache()
		} else {
			fmt.Printf("[CACHE] Redis connected at %s\n", cfg.RedisAddr)
			cache = rc
		}
	} else {
		cache = store.NewMemoryResultCache()
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer rateLimiter.Stop()

	forecastHandler := forecast.NewHandler(cache)
	forecastHandler.CacheTTL = time.Duration(cfg.CacheTTLMinutes) * time.Minute
	plansHandler := plans.NewHandler(planRepo)
	chartHandler := chartview.NewHandler()

	limited := func(h http.HandlerFunc) http.Handler {
		return middleware.RateLimit(rateLimiter, h)
	}

	mux := http.NewServeMux()

	// Projection endpoints
	mux.Handle("/api/forecast", limited(forecastHandler.HandleForecast))
	mux.Handle("/api/forecast/compare", limited(forecastHandler.HandleCompare))
	mux.Handle("/api/forecast/hover", limited(forecastHandler.HandleHover))

	// Saved plan endpoints
	mux.Handle("/api/plans", limited(plansHandler.HandleCollection))
	mux.Handle("/api/plans/import", limited(plansHandler.HandleImport))
	mux.Handle("/api/plans/", limited(plansHandler.HandleItem))

	// Share link endpoints
	mux.Handle("/api/share", limited(share.HandleCreate))
	mux.Handle("/api/share/", limited(share.HandleResolve))

	// Server-rendered chart page
	mux.Handle("/chart", limited(chartHandler.HandleChart))

	fmt.Printf("API server starting on :%d...\n", cfg.Port)
	fmt.Println("  - POST /api/forecast")
	fmt.Println("  - POST /api/forecast/compare")
	fmt.Println("  - POST /api/forecast/hover")
	fmt.Println("  - GET/POST /api/plans")
	fmt.Println("  - POST /api/plans/import")
	fmt.Println("  - GET/DELETE /api/plans/{id}")
	fmt.Println("  - POST /api/share")
	fmt.Println("  - GET  /api/share/{token}")
	fmt.Println("  - GET  /chart")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	case <-quit:
		fmt.Println("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("[FATAL] Shutdown error: %v\n", err)
	}
	fmt.Println("Server exited")
}
