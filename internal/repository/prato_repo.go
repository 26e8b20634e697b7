package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

type PratoRepository interface {
	Create(ctx context.Context, p *model.Prato) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prato, error)
	List(ctx context.Context, categoriaID *uuid.UUID) ([]model.Prato, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateTx grava os dados base do prato dentro da transação; a ficha
	// técnica é trocada à parte por ReplaceIngredientesTx.
	UpdateTx(tx *gorm.DB, p *model.Prato) error

	// ReplaceIngredientesTx troca a receita inteira dentro da transação:
	// apaga os vínculos atuais e insere os novos.
	ReplaceIngredientesTx(tx *gorm.DB, pratoID uuid.UUID, ingredientes []model.PratoIngrediente) error

	DB() *gorm.DB
}

type pratoRepo struct{ db *gorm.DB }

func NewPratoRepository(db *gorm.DB) PratoRepository { return &pratoRepo{db: db} }

func (r *pratoRepo) Create(ctx context.Context, p *model.Prato) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pratoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Prato, error) {
	var p model.Prato
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Preload("Ingredientes").
		Preload("Ingredientes.StockItem").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pratoRepo) List(ctx context.Context, categoriaID *uuid.UUID) ([]model.Prato, error) {
	var pratos []model.Prato
	q := r.db.WithContext(ctx).
		Preload("Categoria").
		Preload("Ingredientes").
		Preload("Ingredientes.StockItem")
	if categoriaID != nil {
		q = q.Where("categoria_id = ?", *categoriaID)
	}
	err := q.Order("nome ASC").Find(&pratos).Error
	return pratos, err
}

func (r *pratoRepo) UpdateTx(tx *gorm.DB, p *model.Prato) error {
	return tx.Omit("Ingredientes").Save(p).Error
}

func (r *pratoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Ingredientes").Delete(&model.Prato{ID: id}).Error
}

func (r *pratoRepo) ReplaceIngredientesTx(tx *gorm.DB, pratoID uuid.UUID, ingredientes []model.PratoIngrediente) error {
	if err := tx.Where("prato_id = ?", pratoID).Delete(&model.PratoIngrediente{}).Error; err != nil {
		return err
	}
	if len(ingredientes) == 0 {
		return nil
	}
	for i := range ingredientes {
		ingredientes[i].PratoID = pratoID
	}
	return tx.Create(&ingredientes).Error
}

func (r *pratoRepo) DB() *gorm.DB { return r.db }
