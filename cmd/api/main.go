package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mohitvuyala/portfolio/backend/internal/config"
	"github.com/mohitvuyala/portfolio/backend/internal/handler"
	"github.com/mohitvuyala/portfolio/backend/internal/model/riddle"
	"github.com/mohitvuyala/portfolio/backend/internal/model/session"
	feedbackService "github.com/mohitvuyala/portfolio/backend/internal/service/feedback"
	gateService "github.com/mohitvuyala/portfolio/backend/internal/service/gate"
	"github.com/mohitvuyala/portfolio/backend/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.Session.UsingDefaultSecret() {
		log.Println("warning: SESSION_SECRET not set, using development secret")
	}
	if cfg.Session.DebugShowAnswer {
		log.Println("warning: DEBUG_SHOW_ANSWER enabled, /_debug_answer reveals riddle answers")
	}

	store, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open feedback store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("warning: failed to close feedback store: %v", err)
		}
	}()
	log.Printf("feedback store ready at %s", cfg.Storage.Path)

	hub := feedbackService.NewHub()
	feedbackSvc := feedbackService.NewService(store, hub)
	gateSvc := gateService.NewService(riddle.Seed(), session.NewMemoryStore(cfg.Session.TTL))

	if cfg.Operator.Enabled() {
		log.Println("operator token required for feedback listing and export")
	}

	router := handler.NewRouter(cfg, gateSvc, feedbackSvc, hub)

	return startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) error {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("portfolio backend listening on %s", addr)
	return runServer(ctx, srv)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
