package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/analytics"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
)

type PratoService interface {
	Criar(ctx context.Context, prato *model.Prato) error
	Buscar(ctx context.Context, id uuid.UUID) (*model.Prato, error)
	Listar(ctx context.Context, categoriaID *uuid.UUID) ([]model.Prato, error)
	// Atualizar troca os dados do prato e, quando ingredientes não é nulo,
	// substitui a ficha técnica inteira na mesma transação.
	Atualizar(ctx context.Context, prato *model.Prato, ingredientes []model.PratoIngrediente) error
	Remover(ctx context.Context, id uuid.UUID) error
	AnalisarCusto(ctx context.Context, id uuid.UUID) (*analytics.AnalisePrato, error)
}

type pratoService struct {
	pratos repository.PratoRepository
	itens  repository.StockItemRepository
}

func NewPratoService(pratos repository.PratoRepository, itens repository.StockItemRepository) PratoService {
	return &pratoService{pratos: pratos, itens: itens}
}

func (s *pratoService) Criar(ctx context.Context, prato *model.Prato) error {
	if len(prato.Ingredientes) == 0 {
		return ErrSemIngredientes
	}
	return s.pratos.Create(ctx, prato)
}

func (s *pratoService) Buscar(ctx context.Context, id uuid.UUID) (*model.Prato, error) {
	prato, err := s.pratos.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return prato, err
}

func (s *pratoService) Listar(ctx context.Context, categoriaID *uuid.UUID) ([]model.Prato, error) {
	return s.pratos.List(ctx, categoriaID)
}

func (s *pratoService) Atualizar(ctx context.Context, prato *model.Prato, ingredientes []model.PratoIngrediente) error {
	if ingredientes != nil && len(ingredientes) == 0 {
		return ErrSemIngredientes
	}
	return runTx(ctx, s.pratos.DB(), func(tx *gorm.DB) error {
		if err := s.pratos.UpdateTx(tx, prato); err != nil {
			return err
		}
		if ingredientes == nil {
			return nil
		}
		return s.pratos.ReplaceIngredientesTx(tx, prato.ID, ingredientes)
	})
}

func (s *pratoService) Remover(ctx context.Context, id uuid.UUID) error {
	return s.pratos.Delete(ctx, id)
}

func (s *pratoService) AnalisarCusto(ctx context.Context, id uuid.UUID) (*analytics.AnalisePrato, error) {
	prato, err := s.Buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	analise := analytics.AnalisarPrato(prato)
	return &analise, nil
}
