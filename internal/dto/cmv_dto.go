package dto

import "github.com/shopspring/decimal"

type MetaCMVRequest struct {
	Nome           string          `json:"nome"            validate:"required,min=2"`
	PercentualAlvo decimal.Decimal `json:"percentual_alvo" validate:"required"`
	CategoriaID    *string         `json:"categoria_id"    validate:"omitempty,uuid"`
	PratoID        *string         `json:"prato_id"        validate:"omitempty,uuid"`
	DataInicio     string          `json:"data_inicio"     validate:"required,datetime=2006-01-02"`
	DataFim        string          `json:"data_fim"        validate:"required,datetime=2006-01-02"`
}

type MetaCMVResponse struct {
	ID             string          `json:"id"`
	Nome           string          `json:"nome"`
	PercentualAlvo decimal.Decimal `json:"percentual_alvo"`
	Escopo         string          `json:"escopo"`
	CategoriaID    *string         `json:"categoria_id"`
	PratoID        *string         `json:"prato_id"`
	DataInicio     string          `json:"data_inicio"`
	DataFim        string          `json:"data_fim"`
}

type ProgressoMetaResponse struct {
	Meta      MetaCMVResponse  `json:"meta"`
	Realizado *decimal.Decimal `json:"realizado"`
	Atingida  bool             `json:"atingida"`
}

// PeriodoQuery delimita consultas de tendência e previsão.
type PeriodoQuery struct {
	Desde string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Ate   string `form:"ate"   validate:"omitempty,datetime=2006-01-02"`
}

type PrevisaoQuery struct {
	Desde     string `form:"desde"     validate:"omitempty,datetime=2006-01-02"`
	Ate       string `form:"ate"       validate:"omitempty,datetime=2006-01-02"`
	Horizonte int    `form:"horizonte" validate:"omitempty,min=1,max=24"`
}
