package dto

import "github.com/shopspring/decimal"

type ItemComandaRequest struct {
	PratoID     string `json:"prato_id"    validate:"required,uuid"`
	Quantidade  int    `json:"quantidade"  validate:"required,min=1"`
	Observacoes string `json:"observacoes" validate:"max=500"`
}

type CriarComandaRequest struct {
	ClienteNome string               `json:"cliente_nome" validate:"required,min=2"`
	MesaNumero  int                  `json:"mesa_numero"  validate:"required,min=1"`
	Itens       []ItemComandaRequest `json:"itens"        validate:"omitempty,dive"`
}

type EditarItemComandaRequest struct {
	Quantidade  int    `json:"quantidade"  validate:"required,min=1"`
	Observacoes string `json:"observacoes" validate:"max=500"`
}

type AtualizarStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=em_aberto finalizada cancelada"`
}

type SepararComandaRequest struct {
	ClienteNome string   `json:"cliente_nome" validate:"required,min=2"`
	ItemIDs     []string `json:"item_ids"     validate:"required,min=1,dive,uuid"`
}

type ItemComandaResponse struct {
	ID            string          `json:"id"`
	PratoID       string          `json:"prato_id"`
	Prato         string          `json:"prato"`
	Quantidade    int             `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Observacoes   string          `json:"observacoes"`
}

type ComandaResponse struct {
	ID            string                `json:"id"`
	ClienteNome   string                `json:"cliente_nome"`
	MesaNumero    int                   `json:"mesa_numero"`
	ResponsavelID string                `json:"responsavel_id"`
	Status        string                `json:"status"`
	ValorTotal    decimal.Decimal       `json:"valor_total"`
	Itens         []ItemComandaResponse `json:"itens"`
	CreatedAt     string                `json:"created_at"`
}

type HistoricoResponse struct {
	Acao          string `json:"acao"`
	Descricao     string `json:"descricao"`
	ResponsavelID string `json:"responsavel_id"`
	CreatedAt     string `json:"created_at"`
}
