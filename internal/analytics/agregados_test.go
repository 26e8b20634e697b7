package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

func analise(nome, categoria string, preco, custo float64) AnalisePrato {
	a := AnalisePrato{
		ID:        uuid.New(),
		Nome:      nome,
		Categoria: categoria,
		Preco:     decimal.NewFromFloat(preco),
		Custo:     decimal.NewFromFloat(custo),
	}
	a.Margem = a.Preco.Sub(a.Custo)
	if cmv, ok := Percentual(a.Custo, a.Preco); ok {
		a.CMVPercentual = &cmv
		a.Classificacao = Classificar(cmv)
	}
	return a
}

func TestPorCategoria(t *testing.T) {
	analises := []AnalisePrato{
		analise("Feijoada", "Pratos principais", 60, 24),
		analise("Moqueca", "Pratos principais", 80, 20),
		analise("Caipirinha", "Bebidas", 20, 4),
	}

	grupos := PorCategoria(analises)
	require.Len(t, grupos, 2)

	// Ordem de primeira aparição.
	assert.Equal(t, "Pratos principais", grupos[0].Nome)
	assert.Equal(t, 2, grupos[0].QuantidadePratos)
	require.NotNil(t, grupos[0].CMVPercentual)
	// (24+20)/(60+80) × 100 = 31.42857…%
	esperado := decimal.NewFromInt(44).Div(decimal.NewFromInt(140)).Mul(decimal.NewFromInt(100))
	assert.True(t, grupos[0].CMVPercentual.Equal(esperado), "cmv = %s", grupos[0].CMVPercentual)

	assert.Equal(t, "Bebidas", grupos[1].Nome)
	require.NotNil(t, grupos[1].CMVPercentual)
	assert.True(t, grupos[1].CMVPercentual.Equal(decimal.NewFromInt(20)))
}

func TestPorCategoria_SemCategoria(t *testing.T) {
	grupos := PorCategoria([]AnalisePrato{analise("Avulso", "Sem categoria", 10, 3)})
	require.Len(t, grupos, 1)
	assert.Equal(t, "Sem categoria", grupos[0].Nome)
}

func TestResumo(t *testing.T) {
	analises := []AnalisePrato{
		analise("A", "X", 100, 50), // 50%
		analise("B", "X", 100, 20), // 20%, melhor
		analise("C", "X", 100, 90), // 90%, pior
	}

	r := Resumo(analises)
	assert.True(t, r.ReceitaTotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, r.CustoTotal.Equal(decimal.NewFromInt(160)))
	assert.True(t, r.MargemTotal.Equal(decimal.NewFromInt(140)))
	require.NotNil(t, r.CMVMedio)
	esperado := decimal.NewFromInt(160).Div(decimal.NewFromInt(300)).Mul(decimal.NewFromInt(100))
	assert.True(t, r.CMVMedio.Equal(esperado))

	require.NotNil(t, r.MelhorPrato)
	assert.Equal(t, "B", r.MelhorPrato.Nome)
	require.NotNil(t, r.PiorPrato)
	assert.Equal(t, "C", r.PiorPrato.Nome)
}

func TestResumo_EmpatePrimeiroEncontrado(t *testing.T) {
	analises := []AnalisePrato{
		analise("Primeiro", "X", 100, 30),
		analise("Segundo", "X", 100, 30),
	}
	r := Resumo(analises)
	require.NotNil(t, r.MelhorPrato)
	assert.Equal(t, "Primeiro", r.MelhorPrato.Nome)
	require.NotNil(t, r.PiorPrato)
	assert.Equal(t, "Primeiro", r.PiorPrato.Nome)
}

func TestResumo_Vazio(t *testing.T) {
	r := Resumo(nil)
	assert.Nil(t, r.CMVMedio)
	assert.Nil(t, r.MelhorPrato)
	assert.Nil(t, r.PiorPrato)
}

// ── TendenciaSemanal ─────────────────────────────────────────────────────────

func movimentoSaida(dia time.Time, pratoID uuid.UUID, qtd, preco float64) model.MovimentoEstoque {
	return model.MovimentoEstoque{
		ID:          uuid.New(),
		Tipo:        model.MovimentoSaida,
		Quantidade:  decimal.NewFromFloat(qtd),
		Unidade:     "Kg",
		PratoID:     &pratoID,
		CreatedAt:   dia,
		StockItem:   &model.StockItem{Preco: decimal.NewFromFloat(preco)},
		StockItemID: uuid.New(),
	}
}

func TestTendenciaSemanal_ReceitaPorPratoDistinto(t *testing.T) {
	prato := uuid.New()
	dia := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) // dia 10 → semana 2

	// Dois movimentos do MESMO prato na mesma semana: receita conta uma vez.
	movs := []model.MovimentoEstoque{
		movimentoSaida(dia, prato, 1, 10),
		movimentoSaida(dia.Add(time.Hour), prato, 2, 10),
	}
	precos := map[uuid.UUID]decimal.Decimal{prato: decimal.NewFromInt(50)}

	semanas := TendenciaSemanal(movs, func(id uuid.UUID) (decimal.Decimal, bool) {
		p, ok := precos[id]
		return p, ok
	})

	require.Len(t, semanas, 1)
	s := semanas[0]
	assert.Equal(t, "Semana 2 - 03/2025", s.Nome)
	assert.True(t, s.Custo.Equal(decimal.NewFromInt(30)), "custo = %s", s.Custo)
	assert.True(t, s.Receita.Equal(decimal.NewFromInt(50)), "receita = %s", s.Receita)
	require.NotNil(t, s.CMVPercentual)
	assert.True(t, s.CMVPercentual.Equal(decimal.NewFromInt(60)))
}

func TestTendenciaSemanal_IgnoraEntradasESaidasSemPrato(t *testing.T) {
	prato := uuid.New()
	dia := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	entrada := movimentoSaida(dia, prato, 5, 10)
	entrada.Tipo = model.MovimentoEntrada
	semPrato := movimentoSaida(dia, prato, 5, 10)
	semPrato.PratoID = nil

	semanas := TendenciaSemanal([]model.MovimentoEstoque{entrada, semPrato},
		func(uuid.UUID) (decimal.Decimal, bool) { return decimal.Zero, false })
	assert.Empty(t, semanas)
}

func TestTendenciaSemanal_ReceitaZeroIndeterminada(t *testing.T) {
	prato := uuid.New()
	dia := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	semanas := TendenciaSemanal([]model.MovimentoEstoque{movimentoSaida(dia, prato, 1, 10)},
		func(uuid.UUID) (decimal.Decimal, bool) { return decimal.Zero, false })

	require.Len(t, semanas, 1)
	assert.Nil(t, semanas[0].CMVPercentual)
	assert.True(t, semanas[0].Receita.IsZero())
}

func TestTendenciaSemanal_OrdenacaoCronologica(t *testing.T) {
	prato := uuid.New()
	movs := []model.MovimentoEstoque{
		movimentoSaida(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), prato, 1, 10),
		movimentoSaida(time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC), prato, 1, 10),
		movimentoSaida(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), prato, 1, 10),
	}
	semanas := TendenciaSemanal(movs, func(uuid.UUID) (decimal.Decimal, bool) {
		return decimal.NewFromInt(10), true
	})

	require.Len(t, semanas, 3)
	assert.Equal(t, "Semana 1 - 03/2025", semanas[0].Nome)
	assert.Equal(t, "Semana 5 - 03/2025", semanas[1].Nome)
	assert.Equal(t, "Semana 1 - 04/2025", semanas[2].Nome)
}
