package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/units"
)

// AjusteEstoque descreve uma entrada ou saída manual de estoque.
// Quantidade vem na unidade informada e é convertida para a unidade
// nativa do item antes de qualquer gravação.
type AjusteEstoque struct {
	StockItemID uuid.UUID
	Tipo        string // entrada | saida
	Quantidade  decimal.Decimal
	Unidade     string
	UsuarioID   *string
	Observacoes *string
}

// PreparoPrato é uma linha de um lote de preparo.
type PreparoPrato struct {
	PratoID uuid.UUID
	Porcoes int
}

type EstoqueService interface {
	CriarItem(ctx context.Context, item *model.StockItem) error
	BuscarItem(ctx context.Context, id uuid.UUID) (*model.StockItem, error)
	ListarItens(ctx context.Context, categoriaID *uuid.UUID) ([]model.StockItem, error)
	AtualizarItem(ctx context.Context, item *model.StockItem) error
	RemoverItem(ctx context.Context, id uuid.UUID) error

	// Ajustar grava o movimento e atualiza a quantidade do item na mesma
	// transação, com a linha do item travada durante a operação.
	Ajustar(ctx context.Context, ajuste AjusteEstoque) (*model.MovimentoEstoque, error)

	// PrepararPrato desconta do estoque os ingredientes de um prato.
	// A verificação de todos os ingredientes precede qualquer desconto:
	// havendo falta em um único item, nada é descontado.
	PrepararPrato(ctx context.Context, pratoID uuid.UUID, porcoes int, usuarioID *string) ([]model.MovimentoEstoque, error)

	// PrepararLote desconta os ingredientes de vários pratos de uma vez,
	// com a mesma garantia tudo-ou-nada do preparo unitário.
	PrepararLote(ctx context.Context, preparos []PreparoPrato, usuarioID *string) ([]model.MovimentoEstoque, error)

	AlertasEstoqueBaixo(ctx context.Context) ([]model.StockItem, error)
	MovimentosDoItem(ctx context.Context, stockItemID uuid.UUID, limit int) ([]model.MovimentoEstoque, error)
	MovimentosRecentes(ctx context.Context, limit int) ([]model.MovimentoEstoque, error)
}

type estoqueService struct {
	itens      repository.StockItemRepository
	movimentos repository.MovimentoEstoqueRepository
	pratos     repository.PratoRepository
}

func NewEstoqueService(itens repository.StockItemRepository, movimentos repository.MovimentoEstoqueRepository, pratos repository.PratoRepository) EstoqueService {
	return &estoqueService{itens: itens, movimentos: movimentos, pratos: pratos}
}

func (s *estoqueService) CriarItem(ctx context.Context, item *model.StockItem) error {
	return s.itens.Create(ctx, item)
}

func (s *estoqueService) BuscarItem(ctx context.Context, id uuid.UUID) (*model.StockItem, error) {
	item, err := s.itens.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return item, err
}

func (s *estoqueService) ListarItens(ctx context.Context, categoriaID *uuid.UUID) ([]model.StockItem, error) {
	return s.itens.List(ctx, categoriaID)
}

func (s *estoqueService) AtualizarItem(ctx context.Context, item *model.StockItem) error {
	return s.itens.Update(ctx, item)
}

func (s *estoqueService) RemoverItem(ctx context.Context, id uuid.UUID) error {
	return s.itens.Delete(ctx, id)
}

func (s *estoqueService) Ajustar(ctx context.Context, ajuste AjusteEstoque) (*model.MovimentoEstoque, error) {
	if !ajuste.Quantidade.IsPositive() {
		return nil, ErrQuantidadeInvalida
	}

	var mov *model.MovimentoEstoque
	err := runTx(ctx, s.itens.DB(), func(tx *gorm.DB) error {
		item, err := s.itens.FindByIDForUpdateTx(tx, ajuste.StockItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		qtd, err := units.Convert(ajuste.Quantidade, ajuste.Unidade, item.Unidade)
		if err != nil {
			return &UnidadeIncompativelError{ItemNome: item.Nome, De: ajuste.Unidade, Para: item.Unidade}
		}

		nova := item.Quantidade
		switch ajuste.Tipo {
		case model.MovimentoEntrada:
			nova = nova.Add(qtd)
		case model.MovimentoSaida:
			if item.Quantidade.LessThan(qtd) {
				return &EstoqueInsuficienteError{Faltas: []Falta{{
					ItemID:     item.ID.String(),
					ItemNome:   item.Nome,
					Disponivel: item.Quantidade,
					Necessario: qtd,
					Unidade:    item.Unidade,
				}}}
			}
			nova = nova.Sub(qtd)
		default:
			return ErrQuantidadeInvalida
		}

		if err := s.itens.UpdateQuantidadeTx(tx, item.ID, nova); err != nil {
			return err
		}

		mov = &model.MovimentoEstoque{
			StockItemID: item.ID,
			Tipo:        ajuste.Tipo,
			Quantidade:  qtd,
			Unidade:     item.Unidade,
			UsuarioID:   ajuste.UsuarioID,
			Observacoes: ajuste.Observacoes,
			CreatedAt:   time.Now(),
		}
		return s.movimentos.CreateTx(tx, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func (s *estoqueService) PrepararPrato(ctx context.Context, pratoID uuid.UUID, porcoes int, usuarioID *string) ([]model.MovimentoEstoque, error) {
	return s.PrepararLote(ctx, []PreparoPrato{{PratoID: pratoID, Porcoes: porcoes}}, usuarioID)
}

// baixaIngrediente é a necessidade de um ingrediente já convertida para a
// unidade nativa do item, com o prato de origem anotado.
type baixaIngrediente struct {
	stockItemID uuid.UUID
	pratoID     uuid.UUID
	quantidade  decimal.Decimal
	unidade     string
}

func (s *estoqueService) PrepararLote(ctx context.Context, preparos []PreparoPrato, usuarioID *string) ([]model.MovimentoEstoque, error) {
	for _, p := range preparos {
		if p.Porcoes <= 0 {
			return nil, ErrQuantidadeInvalida
		}
	}

	var movs []model.MovimentoEstoque
	err := runTx(ctx, s.itens.DB(), func(tx *gorm.DB) error {
		var err error
		movs, err = baixarPratosTx(ctx, tx, s.itens, s.movimentos, s.pratos, preparos, usuarioID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return movs, nil
}

// baixarPratosTx desconta do estoque os ingredientes dos preparos, dentro da
// transação recebida. Também é usado pela venda de balcão, que desconta os
// pratos vendidos na transação que grava a venda.
func baixarPratosTx(
	ctx context.Context,
	tx *gorm.DB,
	itensRepo repository.StockItemRepository,
	movimentosRepo repository.MovimentoEstoqueRepository,
	pratosRepo repository.PratoRepository,
	preparos []PreparoPrato,
	usuarioID *string,
) ([]model.MovimentoEstoque, error) {
	var baixas []baixaIngrediente
	itemIDs := make(map[uuid.UUID]struct{})

	for _, p := range preparos {
		prato, err := pratosRepo.FindByID(ctx, p.PratoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if len(prato.Ingredientes) == 0 {
			return nil, ErrSemIngredientes
		}
		porcoes := decimal.NewFromInt(int64(p.Porcoes))
		for _, ing := range prato.Ingredientes {
			baixas = append(baixas, baixaIngrediente{
				stockItemID: ing.StockItemID,
				pratoID:     prato.ID,
				quantidade:  ing.Quantidade.Mul(porcoes),
				unidade:     ing.Unidade,
			})
			itemIDs[ing.StockItemID] = struct{}{}
		}
	}

	// Trava os itens em ordem determinística para evitar deadlocks entre
	// preparos concorrentes.
	ordenados := make([]uuid.UUID, 0, len(itemIDs))
	for id := range itemIDs {
		ordenados = append(ordenados, id)
	}
	sort.Slice(ordenados, func(i, j int) bool {
		return ordenados[i].String() < ordenados[j].String()
	})

	itens := make(map[uuid.UUID]*model.StockItem, len(ordenados))
	for _, id := range ordenados {
		item, err := itensRepo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		itens[id] = item
	}

	// Converte cada necessidade para a unidade nativa e acumula o total por
	// item, checando a incompatibilidade antes da verificação de saldo.
	necessario := make(map[uuid.UUID]decimal.Decimal, len(itens))
	nativas := make([]decimal.Decimal, len(baixas))
	for i, b := range baixas {
		item := itens[b.stockItemID]
		qtd, err := units.Convert(b.quantidade, b.unidade, item.Unidade)
		if err != nil {
			return nil, &UnidadeIncompativelError{ItemNome: item.Nome, De: b.unidade, Para: item.Unidade}
		}
		nativas[i] = qtd
		necessario[b.stockItemID] = necessario[b.stockItemID].Add(qtd)
	}

	// Verificação completa antes do primeiro desconto.
	var faltas []Falta
	for _, id := range ordenados {
		item := itens[id]
		if item.Quantidade.LessThan(necessario[id]) {
			faltas = append(faltas, Falta{
				ItemID:     item.ID.String(),
				ItemNome:   item.Nome,
				Disponivel: item.Quantidade,
				Necessario: necessario[id],
				Unidade:    item.Unidade,
			})
		}
	}
	if len(faltas) > 0 {
		return nil, &EstoqueInsuficienteError{Faltas: faltas}
	}

	for _, id := range ordenados {
		item := itens[id]
		if err := itensRepo.UpdateQuantidadeTx(tx, id, item.Quantidade.Sub(necessario[id])); err != nil {
			return nil, err
		}
	}
	movs := make([]model.MovimentoEstoque, 0, len(baixas))
	for i, b := range baixas {
		item := itens[b.stockItemID]
		pratoID := b.pratoID
		mov := model.MovimentoEstoque{
			StockItemID: item.ID,
			Tipo:        model.MovimentoSaida,
			Quantidade:  nativas[i],
			Unidade:     item.Unidade,
			PratoID:     &pratoID,
			UsuarioID:   usuarioID,
			CreatedAt:   time.Now(),
		}
		if err := movimentosRepo.CreateTx(tx, &mov); err != nil {
			return nil, err
		}
		movs = append(movs, mov)
	}
	return movs, nil
}

func (s *estoqueService) AlertasEstoqueBaixo(ctx context.Context) ([]model.StockItem, error) {
	return s.itens.ListEstoqueBaixo(ctx)
}

func (s *estoqueService) MovimentosDoItem(ctx context.Context, stockItemID uuid.UUID, limit int) ([]model.MovimentoEstoque, error) {
	return s.movimentos.ListByItem(ctx, stockItemID, limit)
}

func (s *estoqueService) MovimentosRecentes(ctx context.Context, limit int) ([]model.MovimentoEstoque, error) {
	return s.movimentos.ListRecent(ctx, limit)
}
