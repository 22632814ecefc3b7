package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/api"
	"github.com/bishtdisha/helpdesk-sub000/internal/auth"
	"github.com/bishtdisha/helpdesk-sub000/internal/cache"
	"github.com/bishtdisha/helpdesk-sub000/internal/config"
	"github.com/bishtdisha/helpdesk-sub000/internal/middleware"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
	"github.com/bishtdisha/helpdesk-sub000/internal/service"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "helpdesk-server",
	Short: "Multi-tenant helpdesk API server",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", ".", "directory containing config.yaml")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg := store.Get()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	users := cache.NewUserSnapshotCache(repository.NewUserRepository(db), redisClient, cfg.Redis.SnapshotTTL)
	tickets := repository.NewTicketRepository(db)
	articles := repository.NewArticleRepository(db)
	analytics := repository.NewAnalyticsRepository(db)

	engine := access.NewEngine()
	ticketGuard := service.NewTicketAccessService(engine, tickets, users)
	knowledgeGuard := service.NewKnowledgeAccessService(engine, articles, users)
	analyticsGuard := service.NewAnalyticsAccessService(engine, users)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	router := api.NewRouter(api.Handlers{
		Auth:      middleware.NewAuthMiddleware(jwtManager, users),
		Tickets:   api.NewTicketHandler(ticketGuard, tickets),
		Knowledge: api.NewKnowledgeHandler(knowledgeGuard, articles),
		Analytics: api.NewAnalyticsHandler(analyticsGuard, analytics),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
