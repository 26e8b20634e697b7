package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serieMensal(valores ...float64) []PontoSerie {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	serie := make([]PontoSerie, len(valores))
	for i, v := range valores {
		serie[i] = PontoSerie{Data: base.AddDate(0, i, 0), Valor: v}
	}
	return serie
}

func TestPrever_MinimoDePontos(t *testing.T) {
	_, err := Prever(serieMensal(30, 32), 6, 0.95)
	assert.ErrorIs(t, err, ErrDadosInsuficientes)

	p, err := Prever(serieMensal(30, 32, 34), 6, 0.95)
	require.NoError(t, err)
	assert.Len(t, p.Valores, 6)
	assert.Len(t, p.LimiteSuperior, 6)
	assert.Len(t, p.LimiteInferior, 6)
	assert.Len(t, p.Datas, 6)
}

func TestPrever_SerieLinearPerfeita(t *testing.T) {
	// Valores perfeitamente lineares: r² = 1, banda colada na reta.
	p, err := Prever(serieMensal(10, 20, 30, 40), 3, 0.95)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, p.R2, 1e-9)
	assert.Equal(t, ConfiancaAlta, p.NivelConfianca)
	assert.Equal(t, TendenciaCrescente, p.Tendencia)
	for i := range p.Valores {
		assert.InDelta(t, p.Valores[i], p.LimiteSuperior[i], 1e-9)
		assert.InDelta(t, p.Valores[i], p.LimiteInferior[i], 1e-9)
	}
	// Próximo mês segue a reta (~10 por mês).
	assert.Greater(t, p.Valores[0], 40.0)
}

func TestPrever_SerieConstante(t *testing.T) {
	// Sem variação total: r² definido como 0, tendência estável.
	p, err := Prever(serieMensal(25, 25, 25, 25), 2, 0.95)
	require.NoError(t, err)

	assert.Equal(t, 0.0, p.R2)
	assert.Equal(t, TendenciaEstavel, p.Tendencia)
	assert.Equal(t, ConfiancaBaixa, p.NivelConfianca)
	assert.InDelta(t, 25.0, p.Valores[0], 1e-9)
}

func TestPrever_TendenciaDecrescente(t *testing.T) {
	p, err := Prever(serieMensal(60, 50, 40, 30), 1, 0.95)
	require.NoError(t, err)
	assert.Equal(t, TendenciaDecrescente, p.Tendencia)
	assert.Negative(t, p.InclinacaoDia)
}

func TestPrever_InclinacaoPequenaEstavel(t *testing.T) {
	// ~1 ponto de CMV por mês ≈ 0.033/dia, abaixo do limiar de ±0.1.
	p, err := Prever(serieMensal(30, 31, 32, 33), 1, 0.95)
	require.NoError(t, err)
	assert.Equal(t, TendenciaEstavel, p.Tendencia)
}

func TestPrever_DatasMensais(t *testing.T) {
	serie := serieMensal(30, 32, 34)
	p, err := Prever(serie, 3, 0.95)
	require.NoError(t, err)

	ultima := serie[len(serie)-1].Data
	for i, d := range p.Datas {
		assert.Equal(t, ultima.AddDate(0, i+1, 0), d)
	}
}

func TestMediaMovel(t *testing.T) {
	serie := serieMensal(10, 20, 30, 40, 50)

	suave := MediaMovel(serie, 3)
	require.Len(t, suave, 3) // encolhe em janela−1
	assert.InDelta(t, 20, suave[0].Valor, 1e-9)
	assert.InDelta(t, 30, suave[1].Valor, 1e-9)
	assert.InDelta(t, 40, suave[2].Valor, 1e-9)
	// Centrada: a data do ponto é a do meio da janela.
	assert.Equal(t, serie[1].Data, suave[0].Data)
}

func TestMediaMovel_SerieCurtaOuJanelaUm(t *testing.T) {
	serie := serieMensal(10, 20)
	assert.Equal(t, serie, MediaMovel(serie, 3))
	assert.Equal(t, serie, MediaMovel(serie, 1))
}

func TestDetectarSazonalidade_SerieCurta(t *testing.T) {
	// 10 pontos < 2×12: devolve false sem calcular autocorrelação.
	assert.False(t, DetectarSazonalidade(serieMensal(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), 12))
}

func TestDetectarSazonalidade_PadraoRepetido(t *testing.T) {
	// Padrão de período 4 repetido 4 vezes, autocorrelação alta no lag 4.
	var valores []float64
	for i := 0; i < 4; i++ {
		valores = append(valores, 10, 50, 10, 50)
	}
	assert.True(t, DetectarSazonalidade(serieMensal(valores...), 4))
}
