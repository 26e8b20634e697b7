package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

type ComandaRepository interface {
	Create(ctx context.Context, c *model.Comanda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error)
	List(ctx context.Context, status string) ([]model.Comanda, error)

	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Comanda, error)
	UpdateTx(tx *gorm.DB, c *model.Comanda) error
	CreateItemTx(tx *gorm.DB, item *model.ComandaItem) error
	UpdateItemTx(tx *gorm.DB, item *model.ComandaItem) error
	DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error
	CreateHistoricoTx(tx *gorm.DB, h *model.ComandaHistorico) error
	CreateTx(tx *gorm.DB, c *model.Comanda) error

	ListHistorico(ctx context.Context, comandaID uuid.UUID) ([]model.ComandaHistorico, error)

	DB() *gorm.DB
}

type comandaRepo struct{ db *gorm.DB }

func NewComandaRepository(db *gorm.DB) ComandaRepository { return &comandaRepo{db: db} }

func (r *comandaRepo) Create(ctx context.Context, c *model.Comanda) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *comandaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Preload("Itens.Prato").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comandaRepo) List(ctx context.Context, status string) ([]model.Comanda, error) {
	var comandas []model.Comanda
	q := r.db.WithContext(ctx).Preload("Itens").Preload("Itens.Prato")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&comandas).Error
	return comandas, err
}

func (r *comandaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := tx.Preload("Itens").Preload("Itens.Prato").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comandaRepo) UpdateTx(tx *gorm.DB, c *model.Comanda) error {
	return tx.Omit("Itens").Save(c).Error
}

func (r *comandaRepo) CreateItemTx(tx *gorm.DB, item *model.ComandaItem) error {
	return tx.Create(item).Error
}

func (r *comandaRepo) UpdateItemTx(tx *gorm.DB, item *model.ComandaItem) error {
	return tx.Save(item).Error
}

func (r *comandaRepo) DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.ComandaItem{}, "id = ?", itemID).Error
}

func (r *comandaRepo) CreateHistoricoTx(tx *gorm.DB, h *model.ComandaHistorico) error {
	return tx.Create(h).Error
}

func (r *comandaRepo) CreateTx(tx *gorm.DB, c *model.Comanda) error {
	return tx.Create(c).Error
}

func (r *comandaRepo) ListHistorico(ctx context.Context, comandaID uuid.UUID) ([]model.ComandaHistorico, error) {
	var hist []model.ComandaHistorico
	err := r.db.WithContext(ctx).
		Where("comanda_id = ?", comandaID).
		Order("created_at DESC").
		Find(&hist).Error
	return hist, err
}

func (r *comandaRepo) DB() *gorm.DB { return r.db }
