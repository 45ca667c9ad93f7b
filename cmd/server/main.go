package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/forexorbit/academy-calls/internal/adapters/http"
	signalws "github.com/forexorbit/academy-calls/internal/adapters/signal"
	"github.com/forexorbit/academy-calls/internal/app"
	"github.com/forexorbit/academy-calls/internal/app/orch"
	"github.com/forexorbit/academy-calls/internal/app/sfu"
	"github.com/forexorbit/academy-calls/internal/config"
	"github.com/forexorbit/academy-calls/internal/consult"
	"github.com/forexorbit/academy-calls/internal/token"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	manager := app.NewChannelManager()
	policy := app.SimplePolicy{}
	reg := app.NewRegistry()
	relays := sfu.NewRelayManager()

	o := &orch.Orchestrator{
		Registry: reg,
		Channels: manager,
		Policy:   policy,
		Relays:   relays,
	}

	tokens := token.NewIssuer(cfg.Secret, cfg.TokenTTL)
	signalCtrl := signalws.NewSignalWSController(o, tokens)

	repo, db, err := consult.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("failed to open consultation store")
	}
	defer db.Close()
	// The controller evicts through the signal layer so call parties hear
	// about the completed consultation before their seats go away.
	consults := consult.NewService(repo, manager, signalCtrl)

	r := router.SetupRouter(ctx, cfg, signalCtrl, consults, tokens)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Academy calls server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
