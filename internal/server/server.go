package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/petmily/petmily-v2/backend/config"
	"github.com/petmily/petmily-v2/backend/internal/api"
	"github.com/petmily/petmily-v2/backend/internal/middleware"
	"github.com/petmily/petmily-v2/backend/internal/service"
)

// Server wires the analysis pipeline behind an HTTP server.
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New builds the router, the pipeline services and the HTTP server.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config) *Server {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	vision := service.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	images := service.NewStorageService(s3cfg)
	records := service.NewRecordService(db)
	drafts := service.NewDraftService(redisClient)
	analyzer := service.NewAnalysisService(vision, images, records, drafts)

	api.SetupAPI(router, db, analyzer, cfg.AdminKeyHash)

	return &Server{
		router: router,
		cfg:    cfg,
		http: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves HTTP until the listener fails or the server is shut down.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
