package dto

import "github.com/shopspring/decimal"

type StockItemRequest struct {
	Nome             string          `json:"nome"              validate:"required,min=2"`
	CategoriaID      *string         `json:"categoria_id"      validate:"omitempty,uuid"`
	Unidade          string          `json:"unidade"           validate:"required"`
	Quantidade       decimal.Decimal `json:"quantidade"        validate:"min=0"`
	Preco            decimal.Decimal `json:"preco"             validate:"min=0"`
	QuantidadeMinima decimal.Decimal `json:"quantidade_minima" validate:"min=0"`
}

type StockItemResponse struct {
	ID               string          `json:"id"`
	Nome             string          `json:"nome"`
	Categoria        *string         `json:"categoria"`
	CategoriaID      *string         `json:"categoria_id"`
	Unidade          string          `json:"unidade"`
	Quantidade       decimal.Decimal `json:"quantidade"`
	Preco            decimal.Decimal `json:"preco"`
	QuantidadeMinima decimal.Decimal `json:"quantidade_minima"`
	EstoqueBaixo     bool            `json:"estoque_baixo"`
	CreatedAt        string          `json:"created_at"`
}

// AjusteEstoqueRequest registra uma entrada ou saída manual. A quantidade
// vem na unidade informada e é convertida para a unidade nativa do item.
type AjusteEstoqueRequest struct {
	Tipo        string          `json:"tipo"        validate:"required,oneof=entrada saida"`
	Quantidade  decimal.Decimal `json:"quantidade"  validate:"required"`
	Unidade     string          `json:"unidade"     validate:"required"`
	Observacoes *string         `json:"observacoes" validate:"omitempty,max=500"`
}

type MovimentoResponse struct {
	ID          string          `json:"id"`
	StockItemID string          `json:"stock_item_id"`
	Item        string          `json:"item"`
	Tipo        string          `json:"tipo"`
	Quantidade  decimal.Decimal `json:"quantidade"`
	Unidade     string          `json:"unidade"`
	Prato       *string         `json:"prato"`
	UsuarioID   *string         `json:"usuario_id"`
	Observacoes *string         `json:"observacoes"`
	CreatedAt   string          `json:"created_at"`
}

type PreparoRequest struct {
	Porcoes int `json:"porcoes" validate:"required,min=1"`
}

type PreparoLoteItem struct {
	PratoID string `json:"prato_id" validate:"required,uuid"`
	Porcoes int    `json:"porcoes"  validate:"required,min=1"`
}

type PreparoLoteRequest struct {
	Pratos []PreparoLoteItem `json:"pratos" validate:"required,min=1,dive"`
}

// FaltaDTO descreve um item sem saldo suficiente numa resposta 409.
type FaltaDTO struct {
	ItemID     string          `json:"item_id"`
	Item       string          `json:"item"`
	Disponivel decimal.Decimal `json:"disponivel"`
	Necessario decimal.Decimal `json:"necessario"`
	Unidade    string          `json:"unidade"`
}

type EstoqueInsuficienteResponse struct {
	Detail string     `json:"detail"`
	Faltas []FaltaDTO `json:"faltas"`
}
