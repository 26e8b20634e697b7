package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetaCMV é uma meta de percentual de CMV para um período.
// Escopo mutuamente exclusivo: CategoriaID, PratoID, ou nenhum (meta geral).
type MetaCMV struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome           string          `gorm:"not null"`
	PercentualAlvo decimal.Decimal `gorm:"type:decimal(5,2);not null"` // (0, 100]
	CategoriaID    *uuid.UUID      `gorm:"type:uuid;index"`
	PratoID        *uuid.UUID      `gorm:"type:uuid;index"`
	DataInicio     time.Time       `gorm:"type:date;not null"`
	DataFim        time.Time       `gorm:"type:date;not null"`
	CriadoPor      string          `gorm:"not null"`
	CreatedAt      time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
	Prato     *Prato     `gorm:"foreignKey:PratoID"`
}

func (MetaCMV) TableName() string { return "metas_cmv" }

// Escopos de meta derivados dos campos opcionais.
const (
	EscopoGeral     = "geral"
	EscopoCategoria = "categoria"
	EscopoPrato     = "prato"
)

// Escopo resolve o escopo da meta a partir dos campos preenchidos.
func (m *MetaCMV) Escopo() string {
	switch {
	case m.CategoriaID != nil:
		return EscopoCategoria
	case m.PratoID != nil:
		return EscopoPrato
	default:
		return EscopoGeral
	}
}

// Vigente informa se a data de referência cai no período da meta.
func (m *MetaCMV) Vigente(ref time.Time) bool {
	d := ref.Truncate(24 * time.Hour)
	return !d.Before(m.DataInicio) && !d.After(m.DataFim)
}
