package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
)

type CategoriaService interface {
	Criar(ctx context.Context, c *model.Categoria) error
	Buscar(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	Listar(ctx context.Context, tipo string) ([]model.Categoria, error)
	Atualizar(ctx context.Context, c *model.Categoria) error
	Remover(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	categorias repository.CategoriaRepository
}

func NewCategoriaService(categorias repository.CategoriaRepository) CategoriaService {
	return &categoriaService{categorias: categorias}
}

func (s *categoriaService) Criar(ctx context.Context, c *model.Categoria) error {
	return s.categorias.Create(ctx, c)
}

func (s *categoriaService) Buscar(ctx context.Context, id uuid.UUID) (*model.Categoria, error) {
	c, err := s.categorias.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *categoriaService) Listar(ctx context.Context, tipo string) ([]model.Categoria, error) {
	return s.categorias.List(ctx, tipo)
}

func (s *categoriaService) Atualizar(ctx context.Context, c *model.Categoria) error {
	return s.categorias.Update(ctx, c)
}

func (s *categoriaService) Remover(ctx context.Context, id uuid.UUID) error {
	return s.categorias.Delete(ctx, id)
}
