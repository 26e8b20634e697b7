package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
)

// Repositórios em memória para os testes unitários dos serviços.
// DB() devolve nulo, então runTx executa a função direto, sem transação.

type stubStockItemRepo struct {
	itens map[uuid.UUID]*model.StockItem
}

var _ repository.StockItemRepository = (*stubStockItemRepo)(nil)

func newStubStockItemRepo() *stubStockItemRepo {
	return &stubStockItemRepo{itens: make(map[uuid.UUID]*model.StockItem)}
}

func (r *stubStockItemRepo) seed(item *model.StockItem) *model.StockItem {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.itens[item.ID] = item
	return item
}

func (r *stubStockItemRepo) Create(_ context.Context, item *model.StockItem) error {
	r.seed(item)
	return nil
}

func (r *stubStockItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.StockItem, error) {
	item, ok := r.itens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *item
	return &copia, nil
}

func (r *stubStockItemRepo) List(_ context.Context, categoriaID *uuid.UUID) ([]model.StockItem, error) {
	var itens []model.StockItem
	for _, item := range r.itens {
		if categoriaID != nil && (item.CategoriaID == nil || *item.CategoriaID != *categoriaID) {
			continue
		}
		itens = append(itens, *item)
	}
	return itens, nil
}

func (r *stubStockItemRepo) Update(_ context.Context, item *model.StockItem) error {
	r.itens[item.ID] = item
	return nil
}

func (r *stubStockItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.itens, id)
	return nil
}

func (r *stubStockItemRepo) ListEstoqueBaixo(_ context.Context) ([]model.StockItem, error) {
	var baixos []model.StockItem
	for _, item := range r.itens {
		if item.EstoqueBaixo() {
			baixos = append(baixos, *item)
		}
	}
	return baixos, nil
}

func (r *stubStockItemRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.StockItem, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubStockItemRepo) UpdateQuantidadeTx(_ *gorm.DB, id uuid.UUID, quantidade decimal.Decimal) error {
	item, ok := r.itens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantidade = quantidade
	return nil
}

func (r *stubStockItemRepo) DB() *gorm.DB { return nil }

type stubMovimentoRepo struct {
	movimentos []model.MovimentoEstoque
}

var _ repository.MovimentoEstoqueRepository = (*stubMovimentoRepo)(nil)

func newStubMovimentoRepo() *stubMovimentoRepo { return &stubMovimentoRepo{} }

func (r *stubMovimentoRepo) CreateTx(_ *gorm.DB, m *model.MovimentoEstoque) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *stubMovimentoRepo) ListByItem(_ context.Context, stockItemID uuid.UUID, _ int) ([]model.MovimentoEstoque, error) {
	var out []model.MovimentoEstoque
	for _, m := range r.movimentos {
		if m.StockItemID == stockItemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovimentoRepo) ListRecent(_ context.Context, _ int) ([]model.MovimentoEstoque, error) {
	return append([]model.MovimentoEstoque(nil), r.movimentos...), nil
}

func (r *stubMovimentoRepo) ListSaidasComPrato(_ context.Context, desde, ate time.Time) ([]model.MovimentoEstoque, error) {
	var out []model.MovimentoEstoque
	for _, m := range r.movimentos {
		if m.Tipo != model.MovimentoSaida || m.PratoID == nil {
			continue
		}
		if m.CreatedAt.Before(desde) || !m.CreatedAt.Before(ate) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type stubPratoRepo struct {
	pratos map[uuid.UUID]*model.Prato
}

var _ repository.PratoRepository = (*stubPratoRepo)(nil)

func newStubPratoRepo() *stubPratoRepo {
	return &stubPratoRepo{pratos: make(map[uuid.UUID]*model.Prato)}
}

func (r *stubPratoRepo) seed(p *model.Prato) *model.Prato {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pratos[p.ID] = p
	return p
}

func (r *stubPratoRepo) Create(_ context.Context, p *model.Prato) error {
	r.seed(p)
	return nil
}

func (r *stubPratoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Prato, error) {
	p, ok := r.pratos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubPratoRepo) List(_ context.Context, categoriaID *uuid.UUID) ([]model.Prato, error) {
	var out []model.Prato
	for _, p := range r.pratos {
		if categoriaID != nil && (p.CategoriaID == nil || *p.CategoriaID != *categoriaID) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPratoRepo) Update(_ context.Context, p *model.Prato) error {
	return r.UpdateTx(nil, p)
}

func (r *stubPratoRepo) UpdateTx(_ *gorm.DB, p *model.Prato) error {
	existente, ok := r.pratos[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ingredientes := existente.Ingredientes
	atualizado := *p
	atualizado.Ingredientes = ingredientes
	r.pratos[p.ID] = &atualizado
	return nil
}

func (r *stubPratoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.pratos, id)
	return nil
}

func (r *stubPratoRepo) ReplaceIngredientesTx(_ *gorm.DB, pratoID uuid.UUID, ingredientes []model.PratoIngrediente) error {
	p, ok := r.pratos[pratoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range ingredientes {
		ingredientes[i].PratoID = pratoID
	}
	p.Ingredientes = ingredientes
	return nil
}

func (r *stubPratoRepo) DB() *gorm.DB { return nil }

type stubComandaRepo struct {
	comandas  map[uuid.UUID]*model.Comanda
	historico []model.ComandaHistorico
}

var _ repository.ComandaRepository = (*stubComandaRepo)(nil)

func newStubComandaRepo() *stubComandaRepo {
	return &stubComandaRepo{comandas: make(map[uuid.UUID]*model.Comanda)}
}

func (r *stubComandaRepo) Create(_ context.Context, c *model.Comanda) error {
	return r.CreateTx(nil, c)
}

func (r *stubComandaRepo) CreateTx(_ *gorm.DB, c *model.Comanda) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Itens {
		if c.Itens[i].ID == uuid.Nil {
			c.Itens[i].ID = uuid.New()
		}
		c.Itens[i].ComandaID = c.ID
	}
	copia := *c
	r.comandas[c.ID] = &copia
	return nil
}

func (r *stubComandaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comanda, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubComandaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Comanda, error) {
	c, ok := r.comandas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	copia.Itens = append([]model.ComandaItem(nil), c.Itens...)
	return &copia, nil
}

func (r *stubComandaRepo) List(_ context.Context, status string) ([]model.Comanda, error) {
	var out []model.Comanda
	for _, c := range r.comandas {
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubComandaRepo) UpdateTx(_ *gorm.DB, c *model.Comanda) error {
	existente, ok := r.comandas[c.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	itens := existente.Itens
	copia := *c
	copia.Itens = itens
	r.comandas[c.ID] = &copia
	return nil
}

func (r *stubComandaRepo) CreateItemTx(_ *gorm.DB, item *model.ComandaItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	c, ok := r.comandas[item.ComandaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Itens = append(c.Itens, *item)
	return nil
}

func (r *stubComandaRepo) UpdateItemTx(_ *gorm.DB, item *model.ComandaItem) error {
	for _, c := range r.comandas {
		for i := range c.Itens {
			if c.Itens[i].ID == item.ID {
				if c.ID != item.ComandaID {
					// item movido para outra comanda (separação)
					c.Itens = append(c.Itens[:i], c.Itens[i+1:]...)
					destino := r.comandas[item.ComandaID]
					destino.Itens = append(destino.Itens, *item)
					return nil
				}
				c.Itens[i] = *item
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubComandaRepo) DeleteItemTx(_ *gorm.DB, itemID uuid.UUID) error {
	for _, c := range r.comandas {
		for i := range c.Itens {
			if c.Itens[i].ID == itemID {
				c.Itens = append(c.Itens[:i], c.Itens[i+1:]...)
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubComandaRepo) CreateHistoricoTx(_ *gorm.DB, h *model.ComandaHistorico) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.historico = append(r.historico, *h)
	return nil
}

// ListHistorico devolve do mais recente para o mais antigo, como o
// repositório real (ORDER BY created_at DESC).
func (r *stubComandaRepo) ListHistorico(_ context.Context, comandaID uuid.UUID) ([]model.ComandaHistorico, error) {
	var out []model.ComandaHistorico
	for i := len(r.historico) - 1; i >= 0; i-- {
		if r.historico[i].ComandaID == comandaID {
			out = append(out, r.historico[i])
		}
	}
	return out, nil
}

func (r *stubComandaRepo) DB() *gorm.DB { return nil }

type stubVendaRepo struct {
	vendas map[uuid.UUID]*model.Venda
}

var _ repository.VendaRepository = (*stubVendaRepo)(nil)

func newStubVendaRepo() *stubVendaRepo {
	return &stubVendaRepo{vendas: make(map[uuid.UUID]*model.Venda)}
}

func (r *stubVendaRepo) CreateTx(_ *gorm.DB, v *model.Venda) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vendas[v.ID] = v
	return nil
}

func (r *stubVendaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venda, error) {
	v, ok := r.vendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVendaRepo) List(_ context.Context, _, _ *time.Time) ([]model.Venda, error) {
	var out []model.Venda
	for _, v := range r.vendas {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVendaRepo) DB() *gorm.DB { return nil }

type stubMetaRepo struct {
	metas map[uuid.UUID]*model.MetaCMV
}

var _ repository.MetaCMVRepository = (*stubMetaRepo)(nil)

func newStubMetaRepo() *stubMetaRepo {
	return &stubMetaRepo{metas: make(map[uuid.UUID]*model.MetaCMV)}
}

func (r *stubMetaRepo) Create(_ context.Context, m *model.MetaCMV) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.metas[m.ID] = m
	return nil
}

func (r *stubMetaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MetaCMV, error) {
	m, ok := r.metas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMetaRepo) List(_ context.Context) ([]model.MetaCMV, error) {
	var out []model.MetaCMV
	for _, m := range r.metas {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMetaRepo) ListVigentes(_ context.Context, ref time.Time) ([]model.MetaCMV, error) {
	var out []model.MetaCMV
	for _, m := range r.metas {
		if m.Vigente(ref) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMetaRepo) Update(_ context.Context, m *model.MetaCMV) error {
	r.metas[m.ID] = m
	return nil
}

func (r *stubMetaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.metas, id)
	return nil
}
