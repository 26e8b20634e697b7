package worker

// Goroutine de fundo que varre o estoque periodicamente e enfileira um e-mail
// de alerta quando itens atingem o mínimo cadastrado. Um SETNX com TTL por
// item evita repetir o alerta do mesmo item dentro da janela de silêncio.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
)

const (
	alertaKeyPrefix   = "alerta:estoque:"
	alertaSilencioTTL = 24 * time.Hour
)

// AlertaCronConfig reúne as dependências da varredura de estoque baixo.
type AlertaCronConfig struct {
	Itens      repository.StockItemRepository
	Dispatcher *Dispatcher
	RDB        *redis.Client
	EmailTo    string
	Tick       time.Duration
}

// StartAlertaCron lança a goroutine de varredura. Respeita o contexto para
// encerramento gracioso.
func StartAlertaCron(ctx context.Context, cfg AlertaCronConfig) {
	if cfg.EmailTo == "" {
		log.Info().Msg("alerta_cron: ALERTA_EMAIL_TO vazio, varredura desativada")
		return
	}
	go func() {
		ticker := time.NewTicker(cfg.Tick)
		defer ticker.Stop()

		log.Info().Dur("tick", cfg.Tick).Msg("alerta_cron: iniciado")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("alerta_cron: encerrando")
				return
			case <-ticker.C:
				varrerEstoque(ctx, cfg)
			}
		}
	}()
}

func varrerEstoque(ctx context.Context, cfg AlertaCronConfig) {
	itens, err := cfg.Itens.ListEstoqueBaixo(ctx)
	if err != nil {
		log.Error().Err(err).Msg("alerta_cron: falha ao consultar estoque baixo")
		return
	}
	if len(itens) == 0 {
		return
	}

	// Alerta apenas os itens que ainda não foram avisados na janela.
	var novos []model.StockItem
	for _, item := range itens {
		key := alertaKeyPrefix + item.ID.String()
		ok, err := cfg.RDB.SetNX(ctx, key, "1", alertaSilencioTTL).Result()
		if err != nil {
			log.Error().Err(err).Msg("alerta_cron: falha no dedupe, pulando tick")
			return
		}
		if ok {
			novos = append(novos, item)
		}
	}
	if len(novos) == 0 {
		return
	}

	var corpo strings.Builder
	corpo.WriteString("Os seguintes itens atingiram o estoque mínimo:\n\n")
	for _, item := range novos {
		corpo.WriteString(fmt.Sprintf("- %s: %s %s (mínimo %s %s)\n",
			item.Nome,
			item.Quantidade.String(), item.Unidade,
			item.QuantidadeMinima.String(), item.Unidade))
	}

	payload := EmailJobPayload{
		To:      cfg.EmailTo,
		Subject: fmt.Sprintf("Alerta de estoque baixo (%d itens)", len(novos)),
		Body:    corpo.String(),
	}
	if err := cfg.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("alerta_cron: falha ao enfileirar e-mail")
		return
	}
	log.Info().Int("itens", len(novos)).Msg("alerta_cron: alerta enfileirado")
}
