package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/units"
)

func novoPratoFixture() (*stubPratoRepo, PratoService, *model.Prato) {
	pratos := newStubPratoRepo()
	itens := newStubStockItemRepo()
	svc := NewPratoService(pratos, itens)

	prato := pratos.seed(&model.Prato{
		Nome:  "Moqueca",
		Preco: decimal.NewFromInt(70),
		Ingredientes: []model.PratoIngrediente{
			{StockItemID: uuid.New(), Quantidade: decimal.NewFromInt(400), Unidade: units.Grama},
			{StockItemID: uuid.New(), Quantidade: decimal.NewFromInt(200), Unidade: units.Mililitro},
		},
	})
	return pratos, svc, prato
}

func TestAtualizarTrocaFichaInteira(t *testing.T) {
	pratos, svc, prato := novoPratoFixture()

	editado := *prato
	editado.Nome = "Moqueca capixaba"
	editado.Preco = decimal.NewFromInt(82)
	novaFicha := []model.PratoIngrediente{
		{StockItemID: uuid.New(), Quantidade: decimal.NewFromInt(500), Unidade: units.Grama},
	}

	require.NoError(t, svc.Atualizar(context.Background(), &editado, novaFicha))

	guardado := pratos.pratos[prato.ID]
	assert.Equal(t, "Moqueca capixaba", guardado.Nome)
	assert.True(t, guardado.Preco.Equal(decimal.NewFromInt(82)))
	require.Len(t, guardado.Ingredientes, 1)
	assert.Equal(t, novaFicha[0].StockItemID, guardado.Ingredientes[0].StockItemID)
	assert.Equal(t, prato.ID, guardado.Ingredientes[0].PratoID)
}

func TestAtualizarSemFichaMantemIngredientes(t *testing.T) {
	pratos, svc, prato := novoPratoFixture()

	editado := *prato
	editado.Preco = decimal.NewFromInt(75)

	require.NoError(t, svc.Atualizar(context.Background(), &editado, nil))

	guardado := pratos.pratos[prato.ID]
	assert.True(t, guardado.Preco.Equal(decimal.NewFromInt(75)))
	assert.Len(t, guardado.Ingredientes, 2)
}

func TestAtualizarFichaVaziaRejeitada(t *testing.T) {
	_, svc, prato := novoPratoFixture()

	err := svc.Atualizar(context.Background(), prato, []model.PratoIngrediente{})
	assert.ErrorIs(t, err, ErrSemIngredientes)
}

// pratoRepoFichaQuebrada falha ao trocar a ficha e registra a ordem das
// gravações, para garantir que os dados base passam pela mesma transação.
type pratoRepoFichaQuebrada struct {
	*stubPratoRepo
	chamadas []string
	erro     error
}

func (r *pratoRepoFichaQuebrada) UpdateTx(tx *gorm.DB, p *model.Prato) error {
	r.chamadas = append(r.chamadas, "update")
	return r.stubPratoRepo.UpdateTx(tx, p)
}

func (r *pratoRepoFichaQuebrada) ReplaceIngredientesTx(_ *gorm.DB, _ uuid.UUID, _ []model.PratoIngrediente) error {
	r.chamadas = append(r.chamadas, "replace")
	return r.erro
}

func TestAtualizarFichaComFalhaPropagaErro(t *testing.T) {
	pratos := newStubPratoRepo()
	prato := pratos.seed(&model.Prato{Nome: "Moqueca", Preco: decimal.NewFromInt(70)})

	quebrado := &pratoRepoFichaQuebrada{
		stubPratoRepo: pratos,
		erro:          errors.New("ingrediente inexistente"),
	}
	svc := NewPratoService(quebrado, newStubStockItemRepo())

	editado := *prato
	editado.Nome = "Moqueca capixaba"
	err := svc.Atualizar(context.Background(), &editado, []model.PratoIngrediente{
		{StockItemID: uuid.New(), Quantidade: decimal.NewFromInt(500), Unidade: units.Grama},
	})
	require.ErrorIs(t, err, quebrado.erro)

	// As duas gravações acontecem dentro do mesmo runTx; o erro devolvido
	// ao callback desfaz a transação inteira.
	assert.Equal(t, []string{"update", "replace"}, quebrado.chamadas)
}
