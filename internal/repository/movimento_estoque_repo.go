package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

// MovimentoEstoqueRepository gerencia o livro-razão de movimentações.
// O livro é append-only: não há Update nem Delete.
type MovimentoEstoqueRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimentoEstoque) error
	ListByItem(ctx context.Context, stockItemID uuid.UUID, limit int) ([]model.MovimentoEstoque, error)
	ListRecent(ctx context.Context, limit int) ([]model.MovimentoEstoque, error)
	// ListSaidasComPrato retorna as saídas vinculadas a pratos no período,
	// com item e prato pré-carregados. Alimenta a análise semanal de CMV.
	ListSaidasComPrato(ctx context.Context, desde, ate time.Time) ([]model.MovimentoEstoque, error)
}

type movimentoEstoqueRepo struct{ db *gorm.DB }

func NewMovimentoEstoqueRepository(db *gorm.DB) MovimentoEstoqueRepository {
	return &movimentoEstoqueRepo{db: db}
}

func (r *movimentoEstoqueRepo) CreateTx(tx *gorm.DB, m *model.MovimentoEstoque) error {
	return tx.Create(m).Error
}

func (r *movimentoEstoqueRepo) ListByItem(ctx context.Context, stockItemID uuid.UUID, limit int) ([]model.MovimentoEstoque, error) {
	var movs []model.MovimentoEstoque
	q := r.db.WithContext(ctx).
		Preload("StockItem").Preload("Prato").
		Where("stock_item_id = ?", stockItemID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&movs).Error
	return movs, err
}

func (r *movimentoEstoqueRepo) ListRecent(ctx context.Context, limit int) ([]model.MovimentoEstoque, error) {
	var movs []model.MovimentoEstoque
	q := r.db.WithContext(ctx).
		Preload("StockItem").Preload("Prato").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&movs).Error
	return movs, err
}

func (r *movimentoEstoqueRepo) ListSaidasComPrato(ctx context.Context, desde, ate time.Time) ([]model.MovimentoEstoque, error) {
	var movs []model.MovimentoEstoque
	err := r.db.WithContext(ctx).
		Preload("StockItem").Preload("Prato").
		Where("tipo = ? AND prato_id IS NOT NULL AND created_at >= ? AND created_at < ?",
			model.MovimentoSaida, desde, ate).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}
