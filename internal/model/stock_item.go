package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem é um insumo do estoque. Quantidade é uma projeção derivada do
// razão de movimentos: a cada entrada/saída o valor em cache e o registro em
// movimentos_estoque são gravados na mesma transação, de modo que
// Quantidade == Σ(entradas) − Σ(saídas) em qualquer ponto observável.
type StockItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome        string     `gorm:"index;not null"`
	CategoriaID *uuid.UUID `gorm:"type:uuid;index"`
	// Unidade nativa do item. Todos os movimentos são registrados nela.
	Unidade          string          `gorm:"not null"`
	Quantidade       decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Preco            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"` // por unidade nativa
	QuantidadeMinima decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (StockItem) TableName() string { return "stock_items" }

// EstoqueBaixo indica que o item atingiu ou cruzou o mínimo cadastrado.
func (s *StockItem) EstoqueBaixo() bool {
	return s.QuantidadeMinima.IsPositive() && s.Quantidade.LessThanOrEqual(s.QuantidadeMinima)
}
