package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cms-backend/internal/config"
	"cms-backend/internal/handler"
	"cms-backend/internal/middleware"
	"cms-backend/internal/repository"
	"cms-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		logger: logger,
	}

	if err := s.setupRoutes(cfg); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Server) setupRoutes(cfg *config.Config) error {
	userRepo := repository.NewUserRepository(s.db, s.logger)
	articleRepo := repository.NewArticleRepository(s.db, s.logger)

	authService, err := service.NewAuthService(userRepo, cfg, s.logger)
	if err != nil {
		return err
	}

	authHandler := handler.NewAuthHandler(authService, s.logger)
	articleHandler := handler.NewArticleHandler(articleRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Open routes
	s.router.POST("/users", authHandler.Register)
	s.router.POST("/token", authHandler.Token)
	s.router.GET("/articles", articleHandler.List)

	// Authenticated routes
	authRequired := s.router.Group("/")
	authRequired.Use(middleware.AuthMiddleware(authService, s.logger))
	{
		authRequired.GET("/users/me", authHandler.Me)
		authRequired.POST("/articles", articleHandler.Create)
		authRequired.PUT("/articles/:id", articleHandler.Update)
	}

	return nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
