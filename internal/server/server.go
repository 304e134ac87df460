// Package server provides the HTTP API for Mondai.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/mondai/internal/config"
	"github.com/hyperjump/mondai/internal/extract"
	"github.com/hyperjump/mondai/internal/models"
)

// QuizService generates quizzes from raw text.
type QuizService interface {
	Generate(ctx context.Context, text string, numQuestions int, difficulty models.Difficulty) (*models.Quiz, error)
}

// Server is the HTTP server for the Mondai API.
type Server struct {
	service   QuizService
	extractor *extract.Extractor
	config    *config.ServerConfig
	generate  *config.GenerateConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	service QuizService,
	extractor *extract.Extractor,
	serverCfg *config.ServerConfig,
	generateCfg *config.GenerateConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		service:   service,
		extractor: extractor,
		config:    serverCfg,
		generate:  generateCfg,
		logger:    logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/quiz", s.handleGenerate)
	r.Post("/api/v1/quiz/upload", s.handleUpload)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
