package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/infra"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
)

// NovoItemComanda é um lançamento a adicionar numa comanda. O valor unitário
// é congelado a partir do preço atual do prato no momento do lançamento.
type NovoItemComanda struct {
	PratoID     uuid.UUID
	Quantidade  int
	Observacoes string
}

type ComandaService interface {
	Criar(ctx context.Context, comanda *model.Comanda, itens []NovoItemComanda) (*model.Comanda, error)
	Buscar(ctx context.Context, id uuid.UUID) (*model.Comanda, error)
	Listar(ctx context.Context, status string) ([]model.Comanda, error)

	AdicionarItem(ctx context.Context, comandaID uuid.UUID, item NovoItemComanda, responsavelID string) (*model.Comanda, error)
	EditarItem(ctx context.Context, comandaID, itemID uuid.UUID, quantidade int, observacoes string, responsavelID string) (*model.Comanda, error)
	RemoverItem(ctx context.Context, comandaID, itemID uuid.UUID, responsavelID string) (*model.Comanda, error)

	// AtualizarStatus transiciona a comanda. Estados terminais rejeitam
	// qualquer transição posterior.
	AtualizarStatus(ctx context.Context, comandaID uuid.UUID, status, responsavelID string) (*model.Comanda, error)

	// Separar move itens para uma nova comanda da mesma mesa, recalculando
	// os totais das duas na mesma transação.
	Separar(ctx context.Context, comandaID uuid.UUID, itemIDs []uuid.UUID, clienteNome, responsavelID string) (*model.Comanda, error)

	Historico(ctx context.Context, comandaID uuid.UUID) ([]model.ComandaHistorico, error)
	GerarPDF(ctx context.Context, comandaID uuid.UUID, nomeRestaurante, storagePath string) (string, error)
}

type comandaService struct {
	comandas repository.ComandaRepository
	pratos   repository.PratoRepository
}

func NewComandaService(comandas repository.ComandaRepository, pratos repository.PratoRepository) ComandaService {
	return &comandaService{comandas: comandas, pratos: pratos}
}

func (s *comandaService) Criar(ctx context.Context, comanda *model.Comanda, itens []NovoItemComanda) (*model.Comanda, error) {
	err := runTx(ctx, s.comandas.DB(), func(tx *gorm.DB) error {
		comanda.Status = model.ComandaEmAberto
		comanda.ValorTotal = decimal.Zero
		if err := s.comandas.CreateTx(tx, comanda); err != nil {
			return err
		}
		for _, it := range itens {
			if _, err := s.lancarItem(ctx, tx, comanda, it); err != nil {
				return err
			}
		}
		comanda.ValorTotal = totalComanda(comanda.Itens)
		if err := s.comandas.UpdateTx(tx, comanda); err != nil {
			return err
		}
		return s.comandas.CreateHistoricoTx(tx, &model.ComandaHistorico{
			ComandaID:     comanda.ID,
			Acao:          "criacao",
			Descricao:     fmt.Sprintf("Comanda aberta para %s (mesa %d)", comanda.ClienteNome, comanda.MesaNumero),
			ResponsavelID: comanda.ResponsavelID,
		})
	})
	if err != nil {
		return nil, err
	}
	return comanda, nil
}

func (s *comandaService) lancarItem(ctx context.Context, tx *gorm.DB, comanda *model.Comanda, it NovoItemComanda) (*model.ComandaItem, error) {
	if it.Quantidade <= 0 {
		return nil, ErrQuantidadeInvalida
	}
	prato, err := s.pratos.FindByID(ctx, it.PratoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item := &model.ComandaItem{
		ComandaID:     comanda.ID,
		PratoID:       prato.ID,
		Quantidade:    it.Quantidade,
		ValorUnitario: prato.Preco,
		Observacoes:   it.Observacoes,
	}
	if err := s.comandas.CreateItemTx(tx, item); err != nil {
		return nil, err
	}
	comanda.Itens = append(comanda.Itens, *item)
	return item, nil
}

func totalComanda(itens []model.ComandaItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range itens {
		total = total.Add(it.ValorUnitario.Mul(decimal.NewFromInt(int64(it.Quantidade))))
	}
	return total
}

func (s *comandaService) Buscar(ctx context.Context, id uuid.UUID) (*model.Comanda, error) {
	c, err := s.comandas.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *comandaService) Listar(ctx context.Context, status string) ([]model.Comanda, error) {
	return s.comandas.List(ctx, status)
}

// abertaTx carrega a comanda dentro da transação e rejeita mutações em
// estados terminais.
func (s *comandaService) abertaTx(tx *gorm.DB, comandaID uuid.UUID) (*model.Comanda, error) {
	comanda, err := s.comandas.FindByIDTx(tx, comandaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comanda.Terminal() {
		return nil, ErrComandaFechada
	}
	return comanda, nil
}

func (s *comandaService) AdicionarItem(ctx context.Context, comandaID uuid.UUID, item NovoItemComanda, responsavelID string) (*model.Comanda, error) {
	var comanda *model.Comanda
	err := runTx(ctx, s.comandas.DB(), func(tx *gorm.DB) error {
		var err error
		comanda, err = s.abertaTx(tx, comandaID)
		if err != nil {
			return err
		}
		lancado, err := s.lancarItem(ctx, tx, comanda, item)
		if err != nil {
			return err
		}
		comanda.ValorTotal = totalComanda(comanda.Itens)
		if err := s.comandas.UpdateTx(tx, comanda); err != nil {
			return err
		}
		return s.comandas.CreateHistoricoTx(tx, &model.ComandaHistorico{
			ComandaID:     comanda.ID,
			Acao:          "item_adicionado",
			Descricao:     fmt.Sprintf("%dx prato %s", lancado.Quantidade, lancado.PratoID),
			ResponsavelID: responsavelID,
		})
	})
	if err != nil {
		return nil, err
	}
	return comanda, nil
}

func (s *comandaService) EditarItem(ctx context.Context, comandaID, itemID uuid.UUID, quantidade int, observacoes string, responsavelID string) (*model.Comanda, error) {
	if quantidade <= 0 {
		return nil, ErrQuantidadeInvalida
	}
	var comanda *model.Comanda
	err := runTx(ctx, s.comandas.DB(), func(tx *gorm.DB) error {
		var err error
		comanda, err = s.abertaTx(tx, comandaID)
		if err != nil {
			return err
		}
		idx := -1
		for i := range comanda.Itens {
			if comanda.Itens[i].ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		comanda.Itens[idx].Quantidade = quantidade
		comanda.Itens[idx].Observacoes = observacoes
		if err := s.comandas.UpdateItemTx(tx, &comanda.Itens[idx]); err != nil {
			return err
		}
		comanda.ValorTotal = totalComanda(comanda.Itens)
		if err := s.comandas.UpdateTx(tx, comanda); err != nil {
			return err
		}
		return s.comandas.CreateHistoricoTx(tx, &model.ComandaHistorico{
			ComandaID:     comanda.ID,
			Acao:          "item_editado",
			Descricao:     fmt.Sprintf("item %s ajustado para %dx", itemID, quantidade),
			ResponsavelID: responsavelID,
		})
	})
	if err != nil {
		return nil, err
	}
	return comanda, nil
}

func (s *comandaService) RemoverItem(ctx context.Context, comandaID, itemID uuid.UUID, responsavelID string) (*model.Comanda, error) {
	var comanda *model.Comanda
	err := runTx(ctx, s.comandas.DB(), func(tx *gorm.DB) error {
		var err error
		comanda, err = s.abertaTx(tx, comandaID)
		if err != nil {
			return err
		}
		idx := -1
		for i := range comanda.Itens {
			if comanda.Itens[i].ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		if err := s.comandas.DeleteItemTx(tx, itemID); err != nil {
			return err
		}
		comanda.Itens = append(comanda.Itens[:idx], comanda.Itens[idx+1:]...)
		comanda.ValorTotal = totalComanda(comanda.Itens)
		if err := s.comandas.UpdateTx(tx, comanda); err != nil {
			return err
		}
		return s.comandas.CreateHistoricoTx(tx, &model.ComandaHistorico{
			ComandaID:     comanda.ID,
			Acao:          "item_removido",
			Descricao:     fmt.Sprintf("item %s removido", itemID),
			ResponsavelID: responsavelID,
		})
	})
	if err != nil {
		return nil, err
	}
	return comanda, nil
}

func (s *comandaService) AtualizarStatus(ctx context.Context, comandaID uuid.UUID, status, responsavelID string) (*model.Comanda, error) {
	if status != model.ComandaEmAberto && status != model.ComandaFinalizada && status != model.ComandaCancelada {
		return nil, fmt.Errorf("status de comanda desconhecido: %q", status)
	}
	var comanda *model.Comanda
	err := runTx(ctx, s.comandas.DB(), func(tx *gorm.DB) error {
		var err error
		comanda, err = s.abertaTx(tx, comandaID)
		if err != nil {
			return err
		}
		anterior := comanda.Status
		comanda.Status = status
		if err := s.comandas.UpdateTx(tx, comanda); err != nil {
			return err
		}
		return s.comandas.CreateHistoricoTx(tx, &model.ComandaHistorico{
			ComandaID:     comanda.ID,
			Acao:          "status",
			Descricao:     fmt.Sprintf("%s -> %s", anterior, status),
			ResponsavelID: responsavelID,
		})
	})
	if err != nil {
		return nil, err
	}
	return comanda, nil
}

func (s *comandaService) Separar(ctx context.Context, comandaID uuid.UUID, itemIDs []uuid.UUID, clienteNome, responsavelID string) (*model.Comanda, error) {
	if len(itemIDs) == 0 {
		return nil, ErrQuantidadeInvalida
	}
	var nova *model.Comanda
	err := runTx(ctx, s.comandas.DB(), func(tx *gorm.DB) error {
		origem, err := s.abertaTx(tx, comandaID)
		if err != nil {
			return err
		}
		mover := make(map[uuid.UUID]struct{}, len(itemIDs))
		for _, id := range itemIDs {
			mover[id] = struct{}{}
		}
		var movidos, restantes []model.ComandaItem
		for _, it := range origem.Itens {
			if _, ok := mover[it.ID]; ok {
				movidos = append(movidos, it)
			} else {
				restantes = append(restantes, it)
			}
		}
		if len(movidos) != len(itemIDs) {
			return ErrNotFound
		}

		nova = &model.Comanda{
			ClienteNome:   clienteNome,
			MesaNumero:    origem.MesaNumero,
			ResponsavelID: responsavelID,
			Status:        model.ComandaEmAberto,
			ValorTotal:    totalComanda(movidos),
		}
		if err := s.comandas.CreateTx(tx, nova); err != nil {
			return err
		}
		for i := range movidos {
			movidos[i].ComandaID = nova.ID
			if err := s.comandas.UpdateItemTx(tx, &movidos[i]); err != nil {
				return err
			}
		}
		nova.Itens = movidos

		origem.Itens = restantes
		origem.ValorTotal = totalComanda(restantes)
		if err := s.comandas.UpdateTx(tx, origem); err != nil {
			return err
		}
		if err := s.comandas.CreateHistoricoTx(tx, &model.ComandaHistorico{
			ComandaID:     origem.ID,
			Acao:          "separacao",
			Descricao:     fmt.Sprintf("%d itens movidos para a comanda %s", len(movidos), nova.ID),
			ResponsavelID: responsavelID,
		}); err != nil {
			return err
		}
		return s.comandas.CreateHistoricoTx(tx, &model.ComandaHistorico{
			ComandaID:     nova.ID,
			Acao:          "criacao",
			Descricao:     fmt.Sprintf("Comanda separada de %s", origem.ID),
			ResponsavelID: responsavelID,
		})
	})
	if err != nil {
		return nil, err
	}
	return nova, nil
}

func (s *comandaService) Historico(ctx context.Context, comandaID uuid.UUID) ([]model.ComandaHistorico, error) {
	return s.comandas.ListHistorico(ctx, comandaID)
}

func (s *comandaService) GerarPDF(ctx context.Context, comandaID uuid.UUID, nomeRestaurante, storagePath string) (string, error) {
	comanda, err := s.Buscar(ctx, comandaID)
	if err != nil {
		return "", err
	}
	return infra.GerarComandaPDF(comanda, nomeRestaurante, storagePath)
}
