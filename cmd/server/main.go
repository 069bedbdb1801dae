package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"

	"github.com/mxkcz/notehub/internal/config"
	"github.com/mxkcz/notehub/internal/repository"
	"github.com/mxkcz/notehub/internal/server"
	"github.com/mxkcz/notehub/internal/usecase"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	cfg := config.Load()

	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		log.Fatal().Err(err).Msg("create neo4j driver failed")
	}
	defer func() {
		if err := driver.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("close neo4j driver failed")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal().Err(err).Str("uri", cfg.Neo4jURI).Msg("neo4j unreachable")
	}

	notes := usecase.NewNoteUseCase(
		repository.NewNoteRepository(driver),
		repository.NewPublicNoteRepository(driver),
		log,
	)
	folders := usecase.NewFolderUseCase(
		repository.NewFolderRepository(driver),
		repository.NewNoteRepository(driver),
		log,
	)
	auth := usecase.NewAuthUseCase(
		repository.NewUserRepository(driver),
		[]byte(cfg.JWTSecret),
		cfg.TokenTTL,
		log,
	)

	srv := server.New(notes, folders, auth, log, cfg.RequestTimeout)

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
		if err := srv.Listen(cfg.HTTPAddr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if err := srv.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
