package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

// StockItemRepository é o contrato de acesso a dados dos itens de estoque.
// Os serviços dependem da interface, não da implementação GORM, o que permite
// testes unitários com stubs em memória.
type StockItemRepository interface {
	Create(ctx context.Context, item *model.StockItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error)
	List(ctx context.Context, categoriaID *uuid.UUID) ([]model.StockItem, error)
	Update(ctx context.Context, item *model.StockItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListEstoqueBaixo(ctx context.Context) ([]model.StockItem, error)

	// FindByIDForUpdateTx trava a linha do item (SELECT … FOR UPDATE) dentro
	// da transação, serializando ajustes concorrentes sobre o mesmo item.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.StockItem, error)
	UpdateQuantidadeTx(tx *gorm.DB, id uuid.UUID, quantidade decimal.Decimal) error

	// DB expõe o *gorm.DB para os serviços abrirem transações.
	DB() *gorm.DB
}

type stockItemRepo struct{ db *gorm.DB }

func NewStockItemRepository(db *gorm.DB) StockItemRepository { return &stockItemRepo{db: db} }

func (r *stockItemRepo) Create(ctx context.Context, item *model.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := r.db.WithContext(ctx).Preload("Categoria").First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockItemRepo) List(ctx context.Context, categoriaID *uuid.UUID) ([]model.StockItem, error) {
	var itens []model.StockItem
	q := r.db.WithContext(ctx).Preload("Categoria")
	if categoriaID != nil {
		q = q.Where("categoria_id = ?", *categoriaID)
	}
	err := q.Order("nome ASC").Find(&itens).Error
	return itens, err
}

func (r *stockItemRepo) Update(ctx context.Context, item *model.StockItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *stockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.StockItem{}, "id = ?", id).Error
}

func (r *stockItemRepo) ListEstoqueBaixo(ctx context.Context) ([]model.StockItem, error) {
	var itens []model.StockItem
	err := r.db.WithContext(ctx).
		Where("quantidade_minima > 0 AND quantidade <= quantidade_minima").
		Order("nome ASC").
		Find(&itens).Error
	return itens, err
}

func (r *stockItemRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockItemRepo) UpdateQuantidadeTx(tx *gorm.DB, id uuid.UUID, quantidade decimal.Decimal) error {
	return tx.Model(&model.StockItem{}).Where("id = ?", id).
		Update("quantidade", quantidade).Error
}

func (r *stockItemRepo) DB() *gorm.DB { return r.db }
