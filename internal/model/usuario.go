package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario é um operador do sistema. O ID (string do token) é o ator opaco
// gravado em movimentos e histórico.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nome         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Rol          string    `gorm:"not null"` // atendente | gerente | administrador
	Ativo        bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
