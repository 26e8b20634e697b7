package analytics

import (
	"errors"
	"math"
	"time"
)

// ErrDadosInsuficientes é devolvido quando a série não tem pontos suficientes
// para a operação pedida (mínimo de 3 para regressão).
var ErrDadosInsuficientes = errors.New("dados insuficientes para previsão")

// Tendências e níveis de confiança da previsão.
const (
	TendenciaCrescente   = "increasing"
	TendenciaDecrescente = "decreasing"
	TendenciaEstavel     = "stable"

	ConfiancaAlta  = "high"
	ConfiancaMedia = "medium"
	ConfiancaBaixa = "low"
)

// PontoSerie é uma amostra da série temporal de CMV.
type PontoSerie struct {
	Data  time.Time `json:"data"`
	Valor float64   `json:"valor"`
}

// Previsao é o resultado da regressão linear com banda de confiança.
type Previsao struct {
	Datas           []time.Time `json:"datas"`
	Valores         []float64   `json:"valores"`
	LimiteSuperior  []float64   `json:"limite_superior"`
	LimiteInferior  []float64   `json:"limite_inferior"`
	R2              float64     `json:"r2"`
	Tendencia       string      `json:"tendencia"`
	NivelConfianca  string      `json:"nivel_confianca"`
	InclinacaoDia   float64     `json:"inclinacao_dia"`
}

// Prever ajusta valor = a·x + b por mínimos quadrados (x em dias desde a
// primeira amostra) e projeta `horizonte` pontos em incrementos mensais a
// partir da última data observada.
//
// O parâmetro confianca é nominal: a banda usa a aproximação t≈1.96 para 95%.
func Prever(serie []PontoSerie, horizonte int, confianca float64) (*Previsao, error) {
	n := len(serie)
	if n < 3 {
		return nil, ErrDadosInsuficientes
	}

	base := serie[0].Data
	x := make([]float64, n)
	y := make([]float64, n)
	for i, p := range serie {
		x[i] = p.Data.Sub(base).Hours() / 24
		y[i] = p.Valor
	}

	var somaX, somaY float64
	for i := 0; i < n; i++ {
		somaX += x[i]
		somaY += y[i]
	}
	mediaX := somaX / float64(n)
	mediaY := somaY / float64(n)

	var somaXY, somaXX float64
	for i := 0; i < n; i++ {
		somaXY += (x[i] - mediaX) * (y[i] - mediaY)
		somaXX += (x[i] - mediaX) * (x[i] - mediaX)
	}
	if somaXX == 0 {
		// Todas as amostras na mesma data: não há reta a ajustar.
		return nil, ErrDadosInsuficientes
	}

	inclinacao := somaXY / somaXX
	intercepto := mediaY - inclinacao*mediaX

	var ssTotal, ssResidual float64
	for i := 0; i < n; i++ {
		previsto := inclinacao*x[i] + intercepto
		ssTotal += (y[i] - mediaY) * (y[i] - mediaY)
		ssResidual += (y[i] - previsto) * (y[i] - previsto)
	}
	r2 := 0.0
	if ssTotal > 0 {
		r2 = 1 - ssResidual/ssTotal
	}

	erroPadrao := math.Sqrt(ssResidual / float64(n-2))
	margem := 1.96 * erroPadrao

	ultimaData := serie[n-1].Data
	ultimoX := x[n-1]

	p := &Previsao{
		Datas:          make([]time.Time, 0, horizonte),
		Valores:        make([]float64, 0, horizonte),
		LimiteSuperior: make([]float64, 0, horizonte),
		LimiteInferior: make([]float64, 0, horizonte),
		R2:             r2,
		InclinacaoDia:  inclinacao,
	}

	for i := 1; i <= horizonte; i++ {
		data := ultimaData.AddDate(0, i, 0)
		futuroX := ultimoX + data.Sub(ultimaData).Hours()/24
		valor := inclinacao*futuroX + intercepto

		p.Datas = append(p.Datas, data)
		p.Valores = append(p.Valores, valor)
		p.LimiteSuperior = append(p.LimiteSuperior, valor+margem)
		p.LimiteInferior = append(p.LimiteInferior, valor-margem)
	}

	switch {
	case inclinacao > 0.1:
		p.Tendencia = TendenciaCrescente
	case inclinacao < -0.1:
		p.Tendencia = TendenciaDecrescente
	default:
		p.Tendencia = TendenciaEstavel
	}

	switch {
	case r2 > 0.7:
		p.NivelConfianca = ConfiancaAlta
	case r2 > 0.4:
		p.NivelConfianca = ConfiancaMedia
	default:
		p.NivelConfianca = ConfiancaBaixa
	}

	return p, nil
}

// MediaMovel suaviza a série com média móvel simples centrada.
// Janela 1 ou série menor que a janela devolvem a série intacta;
// caso contrário o resultado encolhe em janela−1 pontos.
func MediaMovel(serie []PontoSerie, janela int) []PontoSerie {
	if janela <= 1 || len(serie) < janela {
		return serie
	}

	resultado := make([]PontoSerie, 0, len(serie)-janela+1)
	for i := 0; i+janela <= len(serie); i++ {
		soma := 0.0
		for _, p := range serie[i : i+janela] {
			soma += p.Valor
		}
		resultado = append(resultado, PontoSerie{
			Data:  serie[i+janela/2].Data,
			Valor: soma / float64(janela),
		})
	}
	return resultado
}

// DetectarSazonalidade calcula a autocorrelação com defasagem `periodo` e
// declara sazonal quando r > 0.5. Séries com menos de 2×periodo pontos
// devolvem false sem calcular nada; dado curto não é erro.
func DetectarSazonalidade(serie []PontoSerie, periodo int) bool {
	if len(serie) < periodo*2 {
		return false
	}

	var somaProduto, somaQuad1, somaQuad2 float64
	for i := 0; i < len(serie)-periodo; i++ {
		somaProduto += serie[i].Valor * serie[i+periodo].Valor
		somaQuad1 += serie[i].Valor * serie[i].Valor
		somaQuad2 += serie[i+periodo].Valor * serie[i+periodo].Valor
	}

	den := math.Sqrt(somaQuad1 * somaQuad2)
	if den == 0 {
		return false
	}
	return somaProduto/den > 0.5
}
