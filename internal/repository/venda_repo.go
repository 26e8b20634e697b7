package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

type VendaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	List(ctx context.Context, desde, ate *time.Time) ([]model.Venda, error)

	DB() *gorm.DB
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) CreateTx(tx *gorm.DB, v *model.Venda) error {
	return tx.Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Preload("Itens.Prato").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendaRepo) List(ctx context.Context, desde, ate *time.Time) ([]model.Venda, error) {
	var vendas []model.Venda
	q := r.db.WithContext(ctx).Preload("Itens").Preload("Itens.Prato")
	if desde != nil {
		q = q.Where("created_at >= ?", *desde)
	}
	if ate != nil {
		q = q.Where("created_at < ?", *ate)
	}
	err := q.Order("created_at DESC").Find(&vendas).Error
	return vendas, err
}

func (r *vendaRepo) DB() *gorm.DB { return r.db }
