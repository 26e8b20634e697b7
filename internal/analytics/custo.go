// Package analytics concentra o cálculo de CMV: custo de ficha técnica,
// agregados por categoria e por semana, e a projeção de tendência.
// Todas as funções são puras: recebem dados já carregados e não tocam o banco.
package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

// Classificações de CMV usadas nos selos do painel e nas recomendações.
const (
	ClassificacaoOtimo     = "Ótimo"
	ClassificacaoAceitavel = "Aceitável"
	ClassificacaoRevisar   = "Revisar"
)

// Limites de classificação e referência do setor.
var (
	limiteOtimo     = decimal.NewFromInt(30) // CMV < 30% → Ótimo
	limiteAceitavel = decimal.NewFromInt(40) // 30% ≤ CMV < 40% → Aceitável; ≥ 40% → Revisar
	MediaSetor      = decimal.NewFromInt(30)
)

var cem = decimal.NewFromInt(100)

// IngredienteCusto é o custo de uma linha da ficha técnica.
type IngredienteCusto struct {
	Nome       string          `json:"nome"`
	Quantidade decimal.Decimal `json:"quantidade"`
	Unidade    string          `json:"unidade"`
	Custo      decimal.Decimal `json:"custo"`
}

// AnalisePrato resume o custo e as margens de um prato.
// Percentuais nulos significam indeterminado (preço zero); a apresentação
// deve exibi-los como indeterminados, nunca como 0%.
type AnalisePrato struct {
	ID               uuid.UUID          `json:"id"`
	Nome             string             `json:"nome"`
	Categoria        string             `json:"categoria"`
	Preco            decimal.Decimal    `json:"preco"`
	Custo            decimal.Decimal    `json:"custo"`
	CMVPercentual    *decimal.Decimal   `json:"cmv_percentual"`
	Margem           decimal.Decimal    `json:"margem"`
	MargemPercentual *decimal.Decimal   `json:"margem_percentual"`
	Classificacao    string             `json:"classificacao"`
	Ingredientes     []IngredienteCusto `json:"ingredientes"`
}

// AnalisarPrato calcula custo total e métricas de CMV de um prato com a ficha
// técnica e os itens de estoque pré-carregados.
//
// O custo de cada ingrediente é quantidade registrada × preço do item, sem
// conversão entre a unidade do ingrediente e a unidade nativa do item, pois a
// ficha técnica é cadastrada na unidade em que o item é precificado.
func AnalisarPrato(p *model.Prato) AnalisePrato {
	custoTotal := decimal.Zero
	ingredientes := make([]IngredienteCusto, 0, len(p.Ingredientes))

	for _, ing := range p.Ingredientes {
		if ing.StockItem == nil {
			ingredientes = append(ingredientes, IngredienteCusto{
				Nome:       "Desconhecido",
				Quantidade: ing.Quantidade,
				Unidade:    ing.Unidade,
				Custo:      decimal.Zero,
			})
			continue
		}
		custo := ing.Quantidade.Mul(ing.StockItem.Preco)
		custoTotal = custoTotal.Add(custo)
		ingredientes = append(ingredientes, IngredienteCusto{
			Nome:       ing.StockItem.Nome,
			Quantidade: ing.Quantidade,
			Unidade:    ing.Unidade,
			Custo:      custo,
		})
	}

	categoria := "Sem categoria"
	if p.Categoria != nil {
		categoria = p.Categoria.Nome
	}

	analise := AnalisePrato{
		ID:           p.ID,
		Nome:         p.Nome,
		Categoria:    categoria,
		Preco:        p.Preco,
		Custo:        custoTotal,
		Margem:       p.Preco.Sub(custoTotal),
		Ingredientes: ingredientes,
	}

	if cmv, ok := Percentual(custoTotal, p.Preco); ok {
		analise.CMVPercentual = &cmv
		analise.Classificacao = Classificar(cmv)
	}
	if mp, ok := Percentual(analise.Margem, p.Preco); ok {
		analise.MargemPercentual = &mp
	}
	return analise
}

// Percentual calcula parte/total × 100, sinalizando indeterminado quando o
// denominador é zero.
func Percentual(parte, total decimal.Decimal) (decimal.Decimal, bool) {
	if total.IsZero() {
		return decimal.Zero, false
	}
	return parte.Div(total).Mul(cem), true
}

// Classificar aplica os limites de CMV: <30% Ótimo, <40% Aceitável, senão Revisar.
func Classificar(cmv decimal.Decimal) string {
	switch {
	case cmv.LessThan(limiteOtimo):
		return ClassificacaoOtimo
	case cmv.LessThan(limiteAceitavel):
		return ClassificacaoAceitavel
	default:
		return ClassificacaoRevisar
	}
}

// CMVElevado marca pratos que merecem alerta individual no painel.
func CMVElevado(cmv decimal.Decimal) bool {
	return cmv.GreaterThan(limiteAceitavel)
}
