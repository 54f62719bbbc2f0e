package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/absurdle/assets"
	"github.com/robalobadob/absurdle/internal/config"
	"github.com/robalobadob/absurdle/internal/db"
	"github.com/robalobadob/absurdle/internal/httpserver"
	"github.com/robalobadob/absurdle/internal/store"
	"github.com/robalobadob/absurdle/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	if err := words.Init(cfg.WordsFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	log.Info().Int("words", len(words.All())).Int("defaultLength", cfg.WordLength).Msg("dictionary loaded")

	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer sqlDB.Close()
	if err := db.Migrate(sqlDB, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	srv := httpserver.New(httpserver.Deps{
		Config:     cfg,
		Sessions:   store.NewMemoryStore(),
		DB:         db.NewStore(sqlDB),
		Dictionary: words.All(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.SweepLoop(ctx, cfg.SessionTTL, 10*time.Minute)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting absurdle server")
		if err := srv.Start(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()
	<-ctx.Done()
	log.Info().Msg("shutting down")
}
