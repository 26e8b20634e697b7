package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

type MetaCMVRepository interface {
	Create(ctx context.Context, m *model.MetaCMV) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MetaCMV, error)
	List(ctx context.Context) ([]model.MetaCMV, error)
	// ListVigentes retorna as metas cujo intervalo de vigência contém a data.
	ListVigentes(ctx context.Context, ref time.Time) ([]model.MetaCMV, error)
	Update(ctx context.Context, m *model.MetaCMV) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type metaCMVRepo struct{ db *gorm.DB }

func NewMetaCMVRepository(db *gorm.DB) MetaCMVRepository { return &metaCMVRepo{db: db} }

func (r *metaCMVRepo) Create(ctx context.Context, m *model.MetaCMV) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *metaCMVRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MetaCMV, error) {
	var m model.MetaCMV
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *metaCMVRepo) List(ctx context.Context) ([]model.MetaCMV, error) {
	var metas []model.MetaCMV
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&metas).Error
	return metas, err
}

func (r *metaCMVRepo) ListVigentes(ctx context.Context, ref time.Time) ([]model.MetaCMV, error) {
	var metas []model.MetaCMV
	err := r.db.WithContext(ctx).
		Preload("Categoria").Preload("Prato").
		Where("data_inicio <= ? AND data_fim >= ?", ref, ref).
		Find(&metas).Error
	return metas, err
}

func (r *metaCMVRepo) Update(ctx context.Context, m *model.MetaCMV) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *metaCMVRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MetaCMV{}, "id = ?", id).Error
}
