package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria classifica tanto itens de estoque quanto pratos.
// Tipo distingue os dois usos: "estoque" ou "prato".
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex:idx_categoria_nome_tipo;not null"`
	Tipo      string    `gorm:"uniqueIndex:idx_categoria_nome_tipo;not null"` // "estoque" | "prato"
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Categoria) TableName() string { return "categorias" }
