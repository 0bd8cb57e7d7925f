package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/mancala/bot"
	"github.com/domino14/mancala/config"
	"github.com/domino14/mancala/minimax"
)

func main() {
	cfg := &config.Config{}
	if _, err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-config")
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	d, err := minimax.ParseDifficulty(cfg.GetString(config.ConfigDifficulty))
	if err != nil {
		log.Warn().Err(err).Msg("bad-difficulty-in-config")
	}

	nc, err := nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-connect-to-nats")
	}
	defer nc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := bot.NewBot(d, cfg.GetDuration(config.ConfigBotTimeout))
	subject := cfg.GetString(config.ConfigBotSubject)
	log.Info().Str("subject", subject).Str("difficulty", d.String()).Msg("bot-listening")
	if err := b.Serve(ctx, nc, subject); err != nil {
		log.Error().Err(err).Msg("bot-stopped")
	}
	log.Info().Msg("server gracefully shutting down")
}
