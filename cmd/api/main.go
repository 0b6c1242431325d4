package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/petmily/petmily-v2/backend/config"
	"github.com/petmily/petmily-v2/backend/internal/database"
	"github.com/petmily/petmily-v2/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	s3cfg, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}
	if os.Getenv("S3_SETUP_BUCKET_POLICY") == "true" {
		if err := s3cfg.SetupBucketPolicy(context.Background()); err != nil {
			log.Printf("Failed to apply bucket policy: %v", err)
		}
	}

	srv := server.New(cfg, db, redisClient, s3cfg)

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
