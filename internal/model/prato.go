package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prato é um item do cardápio com sua ficha técnica (ingredientes).
type Prato struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome        string     `gorm:"index;not null"`
	Descricao   *string
	CategoriaID *uuid.UUID      `gorm:"type:uuid;index"`
	Preco       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria    *Categoria         `gorm:"foreignKey:CategoriaID"`
	Ingredientes []PratoIngrediente `gorm:"foreignKey:PratoID;constraint:OnDelete:CASCADE"`
}

func (Prato) TableName() string { return "pratos" }

// PratoIngrediente é uma linha da ficha técnica. O conjunto é imutável após o
// cadastro; edições substituem a ficha inteira dentro de uma transação.
type PratoIngrediente struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PratoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	StockItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantidade  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unidade     string          `gorm:"not null"`
	CreatedAt   time.Time

	StockItem *StockItem `gorm:"foreignKey:StockItemID"`
}

func (PratoIngrediente) TableName() string { return "prato_ingredientes" }
