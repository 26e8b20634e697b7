package worker

// Jobs que estouram o número máximo de tentativas vão para uma fila morta
// (uma lista Redis por fila de origem: dlq:{fila}) para inspeção manual.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

type entradaDLQ struct {
	FilaOrigem string          `json:"fila_origem"`
	Tipo       string          `json:"tipo"`
	Payload    json.RawMessage `json:"payload"`
	Motivo     string          `json:"motivo"`
	Tentativas int             `json:"tentativas"`
	FalhouEm   time.Time       `json:"falhou_em"`
}

// moverParaDLQ grava o job esgotado na fila morta correspondente. Falha de
// gravação é só logada; o job original já saiu da fila de qualquer forma.
func moverParaDLQ(ctx context.Context, rdb *redis.Client, fila string, job Job, motivo string) {
	entrada := entradaDLQ{
		FilaOrigem: fila,
		Tipo:       job.Type,
		Payload:    job.Payload,
		Motivo:     motivo,
		Tentativas: job.Attempts,
		FalhouEm:   time.Now().UTC(),
	}
	data, err := json.Marshal(entrada)
	if err != nil {
		log.Error().Err(err).Str("fila", fila).Msg("dlq: falha ao serializar entrada")
		return
	}
	if err := rdb.LPush(ctx, dlqPrefix+fila, data).Err(); err != nil {
		log.Error().Err(err).Str("fila", fila).Msg("dlq: falha ao gravar")
		return
	}
	log.Warn().
		Str("fila", fila).
		Str("tipo", job.Type).
		Str("motivo", motivo).
		Int("tentativas", job.Attempts).
		Msg("dlq: job movido para a fila morta")
}

// TamanhoDLQ informa o tamanho da fila morta de uma fila de origem,
// para monitoramento.
func TamanhoDLQ(ctx context.Context, rdb *redis.Client, fila string) (int64, error) {
	return rdb.LLen(ctx, dlqPrefix+fila).Result()
}
