package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RanjeetKaur14/UniSphere/database"
	"github.com/RanjeetKaur14/UniSphere/handlers"
	"github.com/RanjeetKaur14/UniSphere/routes"
	"github.com/RanjeetKaur14/UniSphere/store"
)

func main() {
	_ = godotenv.Load()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	log.Info().Msg("starting UniSphere Pulse Feed API")

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Warn().Msg("MONGODB_URI not set, using default localhost")
		uri = "mongodb://127.0.0.1:27017"
	}
	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "unisphere"
	}

	ctx := context.Background()

	client, err := database.Connect(ctx, uri)
	for attempt := 2; err != nil && attempt <= 3; attempt++ {
		log.Warn().Err(err).Int("attempt", attempt-1).Msg("mongo connection failed, retrying")
		time.Sleep(2 * time.Second)
		client, err = database.Connect(ctx, uri)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	log.Info().Msg("connected to MongoDB")

	collections := database.New(client, dbName)
	if err := database.EnsureIndexes(ctx, collections); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.New(store.NewMongo(client, collections))
	router := routes.SetupRouter(h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}

	log.Info().Msg("server stopped")
}
