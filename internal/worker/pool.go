package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueEmail = "jobs:email"

	maxJobAttempts = 3
)

// Job é o envelope genérico das tarefas assíncronas.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enfileira tarefas assíncronas em listas Redis.
// O pool de workers as consome via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueEmail empurra um job de e-mail para o Redis.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: "email", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueEmail, encoded).Err()
}

// StartWorkerPool lança numWorkers goroutines consumindo a fila de e-mail.
// Cada goroutine bloqueia no BRPOP, zero CPU em repouso.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, emails *EmailWorker) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, emails)
	}
	log.Info().Msgf("pool de workers iniciado com %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, emails *EmailWorker) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d encerrando", id)
			return
		default:
			// Pop bloqueante: espera até 5s e volta a checar o contexto
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueEmail).Result()
			if err != nil {
				continue // timeout ou contexto cancelado
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, result[0], result[1], emails)
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, queue, raw string, emails *EmailWorker) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("job ilegível descartado")
		return
	}

	var err error
	switch job.Type {
	case "email":
		err = emails.Process(ctx, job.Payload)
	default:
		log.Warn().Str("type", job.Type).Msg("tipo de job desconhecido")
		return
	}
	if err == nil {
		return
	}

	job.Attempts++
	if job.Attempts >= maxJobAttempts {
		moverParaDLQ(ctx, rdb, queue, job, err.Error())
		return
	}
	encoded, marshalErr := json.Marshal(job)
	if marshalErr != nil {
		log.Error().Err(marshalErr).Msg("falha ao re-enfileirar job")
		return
	}
	if pushErr := rdb.LPush(ctx, queue, encoded).Err(); pushErr != nil {
		log.Error().Err(pushErr).Str("queue", queue).Msg("falha ao re-enfileirar job")
		return
	}
	log.Warn().
		Str("type", job.Type).
		Int("attempts", job.Attempts).
		Err(err).
		Msg("job falhou, re-enfileirado")
}
