package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kanbanhq/kanban-api/database"
	"github.com/kanbanhq/kanban-api/handlers"
	"github.com/kanbanhq/kanban-api/logging"
	"github.com/rs/cors"
)

func main() {
	// .env is optional; deployments configure through the environment.
	_ = godotenv.Load(".env")

	cfg := LoadConfig()
	logging.Init(cfg.LogFile)

	db, err := database.InitDB(cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		logging.Logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	dataService := database.NewDataService(db)
	r := handlers.NewRouter(dataService)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(handlers.RequestLogger(r)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logging.Logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Logger.Errorf("Server shutdown: %v", err)
	}
}
