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

	"github.com/LucGadelha/projeto-estoque-cmv/internal/config"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/infra"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/router"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/worker"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao carregar configuração")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao conectar no postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao conectar no redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pool de workers e varredura de estoque baixo.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.NewEmailWorker(mailer))
	worker.StartAlertaCron(ctx, worker.AlertaCronConfig{
		Itens:      repository.NewStockItemRepository(db),
		Dispatcher: dispatcher,
		RDB:        rdb,
		EmailTo:    cfg.AlertaEmailTo,
		Tick:       time.Duration(cfg.AlertaTickSegundos) * time.Second,
	})

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("servidor escutando em :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("erro no servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("encerrando servidor…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("encerramento forçado")
	}
	log.Info().Msg("servidor finalizado")
}
