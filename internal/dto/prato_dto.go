package dto

import "github.com/shopspring/decimal"

type IngredienteRequest struct {
	StockItemID string          `json:"stock_item_id" validate:"required,uuid"`
	Quantidade  decimal.Decimal `json:"quantidade"    validate:"required"`
	Unidade     string          `json:"unidade"       validate:"required"`
}

type PratoRequest struct {
	Nome         string               `json:"nome"         validate:"required,min=2"`
	Descricao    *string              `json:"descricao"    validate:"omitempty,max=1000"`
	CategoriaID  *string              `json:"categoria_id" validate:"omitempty,uuid"`
	Preco        decimal.Decimal      `json:"preco"        validate:"required"`
	Ingredientes []IngredienteRequest `json:"ingredientes" validate:"required,min=1,dive"`
}

// AtualizarPratoRequest aceita ingredientes nulos (mantém a ficha atual)
// ou uma lista não vazia (substitui a ficha inteira).
type AtualizarPratoRequest struct {
	Nome         string               `json:"nome"         validate:"required,min=2"`
	Descricao    *string              `json:"descricao"    validate:"omitempty,max=1000"`
	CategoriaID  *string              `json:"categoria_id" validate:"omitempty,uuid"`
	Preco        decimal.Decimal      `json:"preco"        validate:"required"`
	Ingredientes []IngredienteRequest `json:"ingredientes" validate:"omitempty,min=1,dive"`
}

type IngredienteResponse struct {
	StockItemID string          `json:"stock_item_id"`
	Item        string          `json:"item"`
	Quantidade  decimal.Decimal `json:"quantidade"`
	Unidade     string          `json:"unidade"`
}

type PratoResponse struct {
	ID           string                `json:"id"`
	Nome         string                `json:"nome"`
	Descricao    *string               `json:"descricao"`
	Categoria    *string               `json:"categoria"`
	CategoriaID  *string               `json:"categoria_id"`
	Preco        decimal.Decimal       `json:"preco"`
	Ingredientes []IngredienteResponse `json:"ingredientes"`
	CreatedAt    string                `json:"created_at"`
}
