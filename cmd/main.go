package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/poofware/buyer-leads-service/internal/app"
	"github.com/poofware/buyer-leads-service/internal/config"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

const (
	corsLowSecurityAllowedOriginLocalhost = "http://localhost:*"
	shutdownTimeout                       = 15 * time.Second
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize buyer-leads-service:", err)
	}
	defer application.Close()

	limiter := app.NewRateLimiter(application)
	router := app.NewRouter(application, limiter)

	c := cron.New()
	if _, err := c.AddFunc(cfg.RateLimitSweepSchedule, func() {
		if _, e := limiter.Sweep(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled rate limit sweep failed")
		}
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule rate limit sweep cron")
	}
	c.Start()
	defer c.Stop()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, corsLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Forwarded-For"},
		ExposedHeaders:   []string{"Retry-After", "Content-Disposition"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           co.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatal("buyer-leads-service failed to start:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	utils.Logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.WithError(err).Error("Graceful shutdown failed")
	}
}
