package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/infra"
)

// EmailJobPayload é o envelope dos jobs da fila de e-mail.
type EmailJobPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Anexo   string `json:"anexo,omitempty"`
}

// EmailWorker envia os e-mails de alerta via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process envia o e-mail do payload. Erro devolvido faz o pool re-enfileirar
// o job até o limite de tentativas.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: payload inválido, descartando")
		return nil
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: destinatário vazio, descartando")
		return nil
	}
	if w.mailer == nil {
		return errors.New("email_worker: SMTP não configurado")
	}

	if err := w.mailer.Send(payload.To, payload.Subject, payload.Body, payload.Anexo); err != nil {
		log.Error().Err(err).Str("to", payload.To).Msg("email_worker: falha no envio")
		return err
	}
	log.Info().Str("to", payload.To).Str("subject", payload.Subject).Msg("email_worker: enviado")
	return nil
}
