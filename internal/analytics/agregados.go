package analytics

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
)

// CMVCategoria agrega as análises de prato de uma categoria.
type CMVCategoria struct {
	Nome             string           `json:"nome"`
	Custo            decimal.Decimal  `json:"custo"`
	Receita          decimal.Decimal  `json:"receita"`
	CMVPercentual    *decimal.Decimal `json:"cmv_percentual"`
	MargemPercentual *decimal.Decimal `json:"margem_percentual"`
	QuantidadePratos int              `json:"quantidade_pratos"`
}

// PorCategoria agrupa as análises por categoria, na ordem em que cada
// categoria aparece pela primeira vez.
func PorCategoria(analises []AnalisePrato) []CMVCategoria {
	indice := make(map[string]int)
	var grupos []CMVCategoria

	for _, a := range analises {
		i, ok := indice[a.Categoria]
		if !ok {
			i = len(grupos)
			indice[a.Categoria] = i
			grupos = append(grupos, CMVCategoria{Nome: a.Categoria})
		}
		grupos[i].Custo = grupos[i].Custo.Add(a.Custo)
		grupos[i].Receita = grupos[i].Receita.Add(a.Preco)
		grupos[i].QuantidadePratos++
	}

	for i := range grupos {
		if cmv, ok := Percentual(grupos[i].Custo, grupos[i].Receita); ok {
			grupos[i].CMVPercentual = &cmv
		}
		if mp, ok := Percentual(grupos[i].Receita.Sub(grupos[i].Custo), grupos[i].Receita); ok {
			grupos[i].MargemPercentual = &mp
		}
	}
	return grupos
}

// DestaquePrato identifica o prato mais/menos eficiente do resumo.
type DestaquePrato struct {
	Nome string          `json:"nome"`
	CMV  decimal.Decimal `json:"cmv"`
}

// ResumoCMV são as estatísticas de portfólio exibidas no topo do painel.
type ResumoCMV struct {
	ReceitaTotal decimal.Decimal  `json:"receita_total"`
	CustoTotal   decimal.Decimal  `json:"custo_total"`
	MargemTotal  decimal.Decimal  `json:"margem_total"`
	CMVMedio     *decimal.Decimal `json:"cmv_medio"`
	MelhorPrato  *DestaquePrato   `json:"melhor_prato"`
	PiorPrato    *DestaquePrato   `json:"pior_prato"`
}

// Resumo computa os totais do portfólio e os destaques por CMV%.
// Melhor = menor CMV%, pior = maior; empates ficam com o primeiro encontrado
// na ordem de iteração. Pratos com CMV indeterminado não disputam destaque.
func Resumo(analises []AnalisePrato) ResumoCMV {
	r := ResumoCMV{}
	for i := range analises {
		a := &analises[i]
		r.ReceitaTotal = r.ReceitaTotal.Add(a.Preco)
		r.CustoTotal = r.CustoTotal.Add(a.Custo)

		if a.CMVPercentual == nil {
			continue
		}
		if r.MelhorPrato == nil || a.CMVPercentual.LessThan(r.MelhorPrato.CMV) {
			r.MelhorPrato = &DestaquePrato{Nome: a.Nome, CMV: *a.CMVPercentual}
		}
		if r.PiorPrato == nil || a.CMVPercentual.GreaterThan(r.PiorPrato.CMV) {
			r.PiorPrato = &DestaquePrato{Nome: a.Nome, CMV: *a.CMVPercentual}
		}
	}
	r.MargemTotal = r.ReceitaTotal.Sub(r.CustoTotal)
	if medio, ok := Percentual(r.CustoTotal, r.ReceitaTotal); ok {
		r.CMVMedio = &medio
	}
	return r
}

// SemanaCMV é um balde semanal da série de tendência.
type SemanaCMV struct {
	Nome          string           `json:"nome"` // "Semana N - MM/YYYY"
	Ano           int              `json:"ano"`
	Mes           int              `json:"mes"`
	Semana        int              `json:"semana"`
	Custo         decimal.Decimal  `json:"custo"`
	Receita       decimal.Decimal  `json:"receita"`
	CMVPercentual *decimal.Decimal `json:"cmv_percentual"`
	Margem        decimal.Decimal  `json:"margem"`
}

// TendenciaSemanal agrupa saídas de estoque vinculadas a pratos em baldes
// semanais (semana do mês = dia/7 + 1) e deriva custo, receita e CMV de cada
// balde.
//
// A receita credita o preço de cada prato *distinto* observado no balde uma
// única vez, independente de quantos movimentos ele gerou, comportamento
// herdado do painel original e mantido deliberadamente (ver DESIGN.md).
func TendenciaSemanal(movimentos []model.MovimentoEstoque, precoPrato func(uuid.UUID) (decimal.Decimal, bool)) []SemanaCMV {
	type balde struct {
		SemanaCMV
		pratos map[uuid.UUID]struct{}
	}
	indice := make(map[string]*balde)

	for i := range movimentos {
		m := &movimentos[i]
		if m.Tipo != model.MovimentoSaida || m.PratoID == nil {
			continue
		}

		semana := m.CreatedAt.Day()/7 + 1
		chave := fmt.Sprintf("Semana %d - %02d/%d", semana, int(m.CreatedAt.Month()), m.CreatedAt.Year())

		b, ok := indice[chave]
		if !ok {
			b = &balde{
				SemanaCMV: SemanaCMV{
					Nome:   chave,
					Ano:    m.CreatedAt.Year(),
					Mes:    int(m.CreatedAt.Month()),
					Semana: semana,
				},
				pratos: make(map[uuid.UUID]struct{}),
			}
			indice[chave] = b
		}

		if m.StockItem != nil {
			b.Custo = b.Custo.Add(m.Quantidade.Mul(m.StockItem.Preco))
		}
		b.pratos[*m.PratoID] = struct{}{}
	}

	resultado := make([]SemanaCMV, 0, len(indice))
	for _, b := range indice {
		for pratoID := range b.pratos {
			if preco, ok := precoPrato(pratoID); ok {
				b.Receita = b.Receita.Add(preco)
			}
		}
		if cmv, ok := Percentual(b.Custo, b.Receita); ok {
			b.CMVPercentual = &cmv
		}
		b.Margem = b.Receita.Sub(b.Custo)
		resultado = append(resultado, b.SemanaCMV)
	}

	sort.Slice(resultado, func(i, j int) bool {
		if resultado[i].Ano != resultado[j].Ano {
			return resultado[i].Ano < resultado[j].Ano
		}
		if resultado[i].Mes != resultado[j].Mes {
			return resultado[i].Mes < resultado[j].Mes
		}
		return resultado[i].Semana < resultado[j].Semana
	})
	return resultado
}
