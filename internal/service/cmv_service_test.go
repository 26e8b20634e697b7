package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/analytics"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/units"
)

// portfólio de dois pratos: Feijoada (CMV 20%) e Caipirinha (CMV 40%).
func novoCMVFixture() (*stubPratoRepo, *stubMovimentoRepo, *stubMetaRepo, CMVService, *model.Prato, *model.Prato) {
	pratos := newStubPratoRepo()
	movimentos := newStubMovimentoRepo()
	metas := newStubMetaRepo()
	svc := NewCMVService(pratos, movimentos, metas, nil, time.Minute)

	catPrincipais := &model.Categoria{ID: uuid.New(), Nome: "Pratos principais"}
	catBebidas := &model.Categoria{ID: uuid.New(), Nome: "Bebidas"}

	feijoada := pratos.seed(&model.Prato{
		Nome:        "Feijoada",
		Preco:       decimal.NewFromInt(50),
		CategoriaID: &catPrincipais.ID,
		Categoria:   catPrincipais,
		Ingredientes: []model.PratoIngrediente{{
			Quantidade: decimal.NewFromInt(1),
			Unidade:    units.Quilograma,
			StockItem:  &model.StockItem{Nome: "Feijão", Preco: decimal.NewFromInt(10)},
		}},
	})
	caipirinha := pratos.seed(&model.Prato{
		Nome:        "Caipirinha",
		Preco:       decimal.NewFromInt(20),
		CategoriaID: &catBebidas.ID,
		Categoria:   catBebidas,
		Ingredientes: []model.PratoIngrediente{{
			Quantidade: decimal.NewFromInt(1),
			Unidade:    units.Unidade,
			StockItem:  &model.StockItem{Nome: "Limão", Preco: decimal.NewFromInt(8)},
		}},
	})
	return pratos, movimentos, metas, svc, feijoada, caipirinha
}

func TestResumoSemCache(t *testing.T) {
	_, _, _, svc, _, _ := novoCMVFixture()

	resumo, err := svc.Resumo(context.Background())
	require.NoError(t, err)

	assert.True(t, resumo.ReceitaTotal.Equal(decimal.NewFromInt(70)))
	assert.True(t, resumo.CustoTotal.Equal(decimal.NewFromInt(18)))
	require.NotNil(t, resumo.CMVMedio)
	// 18/70 × 100 ≈ 25.71
	assert.Equal(t, "25.71", resumo.CMVMedio.StringFixed(2))
	require.NotNil(t, resumo.MelhorPrato)
	assert.Equal(t, "Feijoada", resumo.MelhorPrato.Nome)
	require.NotNil(t, resumo.PiorPrato)
	assert.Equal(t, "Caipirinha", resumo.PiorPrato.Nome)
}

func TestExportarCSV(t *testing.T) {
	_, _, _, svc, _, _ := novoCMVFixture()

	raw, err := svc.ExportarCSV(context.Background())
	require.NoError(t, err)

	registros, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 3)
	assert.Equal(t, []string{"prato", "categoria", "preco_venda", "custo", "cmv_percentual", "margem_percentual", "classificacao"}, registros[0])

	porNome := make(map[string][]string)
	for _, r := range registros[1:] {
		require.Len(t, r, 7)
		porNome[r[0]] = r
	}
	feijoada := porNome["Feijoada"]
	require.NotNil(t, feijoada)
	assert.Equal(t, "Pratos principais", feijoada[1])
	assert.Equal(t, "50.00", feijoada[2])
	assert.Equal(t, "10.00", feijoada[3])
	assert.Equal(t, "20.00", feijoada[4])
	assert.Equal(t, analytics.ClassificacaoOtimo, feijoada[6])
}

func TestCriarMetaValidacoes(t *testing.T) {
	_, _, _, svc, feijoada, _ := novoCMVFixture()

	inicio := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	catID := uuid.New()

	err := svc.CriarMeta(context.Background(), &model.MetaCMV{
		Nome: "escopo duplo", PercentualAlvo: decimal.NewFromInt(30),
		CategoriaID: &catID, PratoID: &feijoada.ID,
		DataInicio: inicio, DataFim: fim,
	})
	assert.ErrorIs(t, err, ErrEscopoMetaInvalido)

	err = svc.CriarMeta(context.Background(), &model.MetaCMV{
		Nome: "período invertido", PercentualAlvo: decimal.NewFromInt(30),
		DataInicio: fim, DataFim: inicio,
	})
	assert.ErrorIs(t, err, ErrPeriodoMetaInvalido)

	err = svc.CriarMeta(context.Background(), &model.MetaCMV{
		Nome: "alvo zero", PercentualAlvo: decimal.Zero,
		DataInicio: inicio, DataFim: fim,
	})
	assert.ErrorIs(t, err, ErrAlvoMetaInvalido)

	err = svc.CriarMeta(context.Background(), &model.MetaCMV{
		Nome: "alvo acima de 100", PercentualAlvo: decimal.NewFromInt(120),
		DataInicio: inicio, DataFim: fim,
	})
	assert.ErrorIs(t, err, ErrAlvoMetaInvalido)

	err = svc.CriarMeta(context.Background(), &model.MetaCMV{
		Nome: "meta válida", PercentualAlvo: decimal.NewFromInt(30),
		DataInicio: inicio, DataFim: fim, CriadoPor: "gerente-1",
	})
	require.NoError(t, err)

	lista, err := svc.ListarMetas(context.Background())
	require.NoError(t, err)
	assert.Len(t, lista, 1)
}

func TestProgressoMetas(t *testing.T) {
	_, _, metas, svc, feijoada, caipirinha := novoCMVFixture()

	inicio := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	ref := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.CriarMeta(context.Background(), &model.MetaCMV{
		Nome: "Meta geral", PercentualAlvo: decimal.NewFromInt(30),
		DataInicio: inicio, DataFim: fim,
	}))
	require.NoError(t, svc.CriarMeta(context.Background(), &model.MetaCMV{
		Nome: "Meta bebidas", PercentualAlvo: decimal.NewFromInt(35),
		CategoriaID: caipirinha.CategoriaID, Categoria: caipirinha.Categoria,
		DataInicio: inicio, DataFim: fim,
	}))
	require.NoError(t, svc.CriarMeta(context.Background(), &model.MetaCMV{
		Nome: "Meta feijoada", PercentualAlvo: decimal.NewFromInt(25),
		PratoID:    &feijoada.ID,
		DataInicio: inicio, DataFim: fim,
	}))
	// Fora do período de referência: não deve aparecer no progresso
	require.NoError(t, svc.CriarMeta(context.Background(), &model.MetaCMV{
		Nome: "Meta do ano passado", PercentualAlvo: decimal.NewFromInt(30),
		DataInicio: inicio.AddDate(-1, 0, 0), DataFim: fim.AddDate(-1, 0, 0),
	}))
	require.Len(t, metas.metas, 4)

	progresso, err := svc.ProgressoMetas(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, progresso, 3)

	porNome := make(map[string]ProgressoMeta)
	for _, p := range progresso {
		porNome[p.Meta.Nome] = p
	}

	geral := porNome["Meta geral"]
	require.NotNil(t, geral.Realizado)
	assert.Equal(t, "25.71", geral.Realizado.StringFixed(2))
	assert.True(t, geral.Atingida)

	bebidas := porNome["Meta bebidas"]
	require.NotNil(t, bebidas.Realizado)
	// CMV de Bebidas é 40%, acima do alvo de 35%
	assert.Equal(t, "40.00", bebidas.Realizado.StringFixed(2))
	assert.False(t, bebidas.Atingida)

	prato := porNome["Meta feijoada"]
	require.NotNil(t, prato.Realizado)
	assert.Equal(t, "20.00", prato.Realizado.StringFixed(2))
	assert.True(t, prato.Atingida)
}

func TestTendenciaSemanalDoServico(t *testing.T) {
	_, movimentos, _, svc, feijoada, _ := novoCMVFixture()

	feijao := &model.StockItem{ID: uuid.New(), Nome: "Feijão", Unidade: units.Quilograma, Preco: decimal.NewFromInt(10)}
	dia := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) // dia 10 cai na semana 2

	for i := 0; i < 2; i++ {
		require.NoError(t, movimentos.CreateTx(nil, &model.MovimentoEstoque{
			StockItemID: feijao.ID,
			Tipo:        model.MovimentoSaida,
			Quantidade:  decimal.NewFromInt(1),
			Unidade:     units.Quilograma,
			PratoID:     &feijoada.ID,
			CreatedAt:   dia,
			StockItem:   feijao,
		}))
	}

	semanas, err := svc.TendenciaSemanal(context.Background(), dia.AddDate(0, 0, -7), dia.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, semanas, 1)

	sem := semanas[0]
	assert.Equal(t, 2, sem.Semana)
	assert.Equal(t, 3, sem.Mes)
	// Dois movimentos de 1 Kg a R$10: custo 20. Receita credita o prato
	// distinto uma única vez: 50.
	assert.True(t, sem.Custo.Equal(decimal.NewFromInt(20)))
	assert.True(t, sem.Receita.Equal(decimal.NewFromInt(50)))
	require.NotNil(t, sem.CMVPercentual)
	assert.Equal(t, "40.00", sem.CMVPercentual.StringFixed(2))
}

func TestPreverCMVSemDados(t *testing.T) {
	_, _, _, svc, _, _ := novoCMVFixture()

	desde := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.PreverCMV(context.Background(), desde, desde.AddDate(0, 3, 0), 4)
	assert.ErrorIs(t, err, analytics.ErrDadosInsuficientes)
}
