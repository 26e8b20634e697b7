package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
)

// ItemVenda é uma linha de venda de balcão.
type ItemVenda struct {
	PratoID    uuid.UUID
	Quantidade int
}

type VendaService interface {
	// Registrar grava a venda e desconta do estoque os ingredientes de todos
	// os pratos vendidos na mesma transação. Falta de qualquer ingrediente
	// aborta a venda inteira.
	Registrar(ctx context.Context, usuarioID string, itens []ItemVenda) (*model.Venda, error)
	Buscar(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	Listar(ctx context.Context, desde, ate *time.Time) ([]model.Venda, error)
}

type vendaService struct {
	vendas     repository.VendaRepository
	pratos     repository.PratoRepository
	itens      repository.StockItemRepository
	movimentos repository.MovimentoEstoqueRepository
}

func NewVendaService(vendas repository.VendaRepository, pratos repository.PratoRepository, itens repository.StockItemRepository, movimentos repository.MovimentoEstoqueRepository) VendaService {
	return &vendaService{vendas: vendas, pratos: pratos, itens: itens, movimentos: movimentos}
}

func (s *vendaService) Registrar(ctx context.Context, usuarioID string, itens []ItemVenda) (*model.Venda, error) {
	if len(itens) == 0 {
		return nil, ErrQuantidadeInvalida
	}
	for _, it := range itens {
		if it.Quantidade <= 0 {
			return nil, ErrQuantidadeInvalida
		}
	}

	var venda *model.Venda
	err := runTx(ctx, s.vendas.DB(), func(tx *gorm.DB) error {
		total := decimal.Zero
		linhas := make([]model.VendaItem, 0, len(itens))
		preparos := make([]PreparoPrato, 0, len(itens))
		for _, it := range itens {
			prato, err := s.pratos.FindByID(ctx, it.PratoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			qtd := decimal.NewFromInt(int64(it.Quantidade))
			linha := model.VendaItem{
				PratoID:       prato.ID,
				Quantidade:    it.Quantidade,
				PrecoUnitario: prato.Preco,
				PrecoTotal:    prato.Preco.Mul(qtd),
			}
			total = total.Add(linha.PrecoTotal)
			linhas = append(linhas, linha)
			preparos = append(preparos, PreparoPrato{PratoID: it.PratoID, Porcoes: it.Quantidade})
		}

		venda = &model.Venda{
			UsuarioID:  usuarioID,
			ValorTotal: total,
			Status:     "concluida",
			Itens:      linhas,
		}
		if err := s.vendas.CreateTx(tx, venda); err != nil {
			return err
		}

		_, err := baixarPratosTx(ctx, tx, s.itens, s.movimentos, s.pratos, preparos, &usuarioID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return venda, nil
}

func (s *vendaService) Buscar(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	v, err := s.vendas.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *vendaService) Listar(ctx context.Context, desde, ate *time.Time) ([]model.Venda, error) {
	return s.vendas.List(ctx, desde, ate)
}
