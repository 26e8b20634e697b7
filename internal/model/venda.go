package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venda é uma venda de balcão concluída. O desconto de estoque dos pratos
// vendidos acontece na mesma transação que grava a venda.
type Venda struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID  string          `gorm:"not null;index"`
	ValorTotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status     string          `gorm:"not null;default:'concluida'"`
	CreatedAt  time.Time       `gorm:"index"`

	Itens []VendaItem `gorm:"foreignKey:VendaID;constraint:OnDelete:CASCADE"`
}

func (Venda) TableName() string { return "vendas" }

type VendaItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	PratoID       uuid.UUID       `gorm:"type:uuid;not null"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecoTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Prato *Prato `gorm:"foreignKey:PratoID"`
}

func (VendaItem) TableName() string { return "venda_itens" }
