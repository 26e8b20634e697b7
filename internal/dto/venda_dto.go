package dto

import "github.com/shopspring/decimal"

type ItemVendaRequest struct {
	PratoID    string `json:"prato_id"   validate:"required,uuid"`
	Quantidade int    `json:"quantidade" validate:"required,min=1"`
}

type RegistrarVendaRequest struct {
	Itens []ItemVendaRequest `json:"itens" validate:"required,min=1,dive"`
}

type ItemVendaResponse struct {
	PratoID       string          `json:"prato_id"`
	Prato         string          `json:"prato"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	PrecoTotal    decimal.Decimal `json:"preco_total"`
}

type VendaResponse struct {
	ID         string              `json:"id"`
	UsuarioID  string              `json:"usuario_id"`
	ValorTotal decimal.Decimal     `json:"valor_total"`
	Status     string              `json:"status"`
	Itens      []ItemVendaResponse `json:"itens"`
	CreatedAt  string              `json:"created_at"`
}
