package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados possíveis de uma comanda. Finalizada e cancelada são terminais:
// nenhuma mutação de itens é permitida depois da transição.
const (
	ComandaEmAberto   = "em_aberto"
	ComandaFinalizada = "finalizada"
	ComandaCancelada  = "cancelada"
)

// Comanda é o pedido de uma mesa. ValorTotal é derivado: recalculado como
// Σ(quantidade × valor_unitario) na mesma transação de qualquer mutação de
// itens, nunca mantido por fora desse recálculo.
type Comanda struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteNome   string          `gorm:"not null"`
	MesaNumero    int             `gorm:"not null"`
	ResponsavelID string          `gorm:"not null"`
	Status        string          `gorm:"not null;default:'em_aberto';index"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Itens []ComandaItem `gorm:"foreignKey:ComandaID;constraint:OnDelete:CASCADE"`
}

func (Comanda) TableName() string { return "comandas" }

// Terminal informa se a comanda já saiu do estado em_aberto.
func (c *Comanda) Terminal() bool {
	return c.Status == ComandaFinalizada || c.Status == ComandaCancelada
}

// ComandaItem é um lançamento da comanda. ValorUnitario é congelado no
// momento do lançamento; mudanças posteriores no preço do prato não o afetam.
type ComandaItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComandaID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PratoID       uuid.UUID       `gorm:"type:uuid;not null"`
	Quantidade    int             `gorm:"not null"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Observacoes   string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Prato *Prato `gorm:"foreignKey:PratoID"`
}

func (ComandaItem) TableName() string { return "comanda_itens" }

// ComandaHistorico registra cada operação que altera o estado de uma comanda
// (criação, itens, status, separação). Append-only, exibido por created_at DESC.
type ComandaHistorico struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComandaID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Acao          string    `gorm:"not null"`
	Descricao     string
	ResponsavelID string
	CreatedAt     time.Time `gorm:"index"`
}

func (ComandaHistorico) TableName() string { return "comanda_historico" }
