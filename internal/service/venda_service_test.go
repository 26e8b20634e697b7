package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/units"
)

func novaVendaFixture() (*stubStockItemRepo, *stubMovimentoRepo, *stubPratoRepo, *stubVendaRepo, VendaService) {
	itens := newStubStockItemRepo()
	movimentos := newStubMovimentoRepo()
	pratos := newStubPratoRepo()
	vendas := newStubVendaRepo()
	svc := NewVendaService(vendas, pratos, itens, movimentos)
	return itens, movimentos, pratos, vendas, svc
}

func TestRegistrarVendaDescontaEstoque(t *testing.T) {
	itens, movimentos, pratos, vendas, svc := novaVendaFixture()

	pao := itens.seed(&model.StockItem{Nome: "Pão", Unidade: units.Unidade, Quantidade: decimal.NewFromInt(20)})
	carne := itens.seed(&model.StockItem{Nome: "Carne", Unidade: units.Quilograma, Quantidade: decimal.NewFromInt(3)})

	xburger := pratos.seed(&model.Prato{
		Nome:  "X-burger",
		Preco: decimal.NewFromInt(28),
		Ingredientes: []model.PratoIngrediente{
			{StockItemID: pao.ID, Quantidade: decimal.NewFromInt(1), Unidade: units.Unidade},
			{StockItemID: carne.ID, Quantidade: decimal.NewFromInt(150), Unidade: units.Grama},
		},
	})
	refri := pratos.seed(&model.Prato{
		Nome:  "Refrigerante",
		Preco: decimal.NewFromInt(8),
		Ingredientes: []model.PratoIngrediente{
			{StockItemID: pao.ID, Quantidade: decimal.NewFromInt(1), Unidade: units.Unidade},
		},
	})

	venda, err := svc.Registrar(context.Background(), "caixa-1", []ItemVenda{
		{PratoID: xburger.ID, Quantidade: 2},
		{PratoID: refri.ID, Quantidade: 1},
	})
	require.NoError(t, err)

	// 2×28 + 1×8 = 64
	assert.True(t, venda.ValorTotal.Equal(decimal.NewFromInt(64)))
	assert.Equal(t, "caixa-1", venda.UsuarioID)
	require.Len(t, venda.Itens, 2)
	assert.True(t, venda.Itens[0].PrecoUnitario.Equal(decimal.NewFromInt(28)))
	assert.True(t, venda.Itens[0].PrecoTotal.Equal(decimal.NewFromInt(56)))

	// Estoque baixado na mesma operação: 3 pães, 0.3 Kg de carne
	assert.True(t, itens.itens[pao.ID].Quantidade.Equal(decimal.NewFromInt(17)))
	assert.True(t, itens.itens[carne.ID].Quantidade.Equal(decimal.RequireFromString("2.7")))

	// Um movimento por ingrediente de cada prato, todos com o prato de origem
	require.Len(t, movimentos.movimentos, 3)
	for _, m := range movimentos.movimentos {
		assert.Equal(t, model.MovimentoSaida, m.Tipo)
		require.NotNil(t, m.PratoID)
	}

	assert.Len(t, vendas.vendas, 1)
}

func TestRegistrarVendaEstoqueInsuficiente(t *testing.T) {
	itens, movimentos, pratos, _, svc := novaVendaFixture()

	peixe := itens.seed(&model.StockItem{Nome: "Peixe", Unidade: units.Quilograma, Quantidade: decimal.RequireFromString("0.2")})
	moqueca := pratos.seed(&model.Prato{
		Nome:  "Moqueca",
		Preco: decimal.NewFromInt(55),
		Ingredientes: []model.PratoIngrediente{
			{StockItemID: peixe.ID, Quantidade: decimal.NewFromInt(400), Unidade: units.Grama},
		},
	})

	_, err := svc.Registrar(context.Background(), "caixa-1", []ItemVenda{{PratoID: moqueca.ID, Quantidade: 1}})

	var faltaErr *EstoqueInsuficienteError
	require.ErrorAs(t, err, &faltaErr)
	require.Len(t, faltaErr.Faltas, 1)
	assert.Equal(t, "Peixe", faltaErr.Faltas[0].ItemNome)

	// O saldo não foi tocado e nenhum movimento foi gravado
	assert.True(t, itens.itens[peixe.ID].Quantidade.Equal(decimal.RequireFromString("0.2")))
	assert.Empty(t, movimentos.movimentos)
}

func TestRegistrarVendaSemItens(t *testing.T) {
	_, _, _, _, svc := novaVendaFixture()

	_, err := svc.Registrar(context.Background(), "caixa-1", nil)
	assert.ErrorIs(t, err, ErrQuantidadeInvalida)

	_, err = svc.Registrar(context.Background(), "caixa-1", []ItemVenda{})
	assert.ErrorIs(t, err, ErrQuantidadeInvalida)
}

func TestRegistrarVendaQuantidadeInvalida(t *testing.T) {
	_, _, pratos, _, svc := novaVendaFixture()
	p := pratos.seed(&model.Prato{Nome: "Qualquer", Preco: decimal.NewFromInt(10)})

	_, err := svc.Registrar(context.Background(), "caixa-1", []ItemVenda{{PratoID: p.ID, Quantidade: 0}})
	assert.ErrorIs(t, err, ErrQuantidadeInvalida)
}
