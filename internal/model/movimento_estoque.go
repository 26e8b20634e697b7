package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de movimento do razão de estoque.
const (
	MovimentoEntrada = "entrada"
	MovimentoSaida   = "saida"
)

// MovimentoEstoque é uma linha do razão append-only do estoque.
// Nunca é atualizada nem removida: é a trilha de auditoria da qual
// StockItem.Quantidade é a projeção.
//
// Quantidade é sempre positiva e sempre na unidade nativa do item
// (a conversão acontece antes da gravação).
type MovimentoEstoque struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StockItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo        string          `gorm:"not null"` // entrada | saida
	Quantidade  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unidade     string          `gorm:"not null"`
	PratoID     *uuid.UUID      `gorm:"type:uuid;index"` // preenchido quando a saída veio do preparo de um prato
	UsuarioID   *string         // ator opaco vindo do provedor de identidade
	Observacoes *string
	CreatedAt   time.Time `gorm:"index"`

	StockItem *StockItem `gorm:"foreignKey:StockItemID"`
	Prato     *Prato     `gorm:"foreignKey:PratoID"`
}

func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
