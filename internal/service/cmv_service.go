package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/analytics"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
)

const cacheKeyResumoCMV = "cmv:resumo"

// ProgressoMeta compara uma meta vigente com o CMV realizado do seu escopo.
type ProgressoMeta struct {
	Meta      model.MetaCMV
	Realizado *decimal.Decimal // nulo quando o escopo não tem dados no período
	Atingida  bool
}

type CMVService interface {
	AnalisarPratos(ctx context.Context) ([]analytics.AnalisePrato, error)
	Resumo(ctx context.Context) (*analytics.ResumoCMV, error)
	PorCategoria(ctx context.Context) ([]analytics.CMVCategoria, error)
	TendenciaSemanal(ctx context.Context, desde, ate time.Time) ([]analytics.SemanaCMV, error)

	// PreverCMV projeta o CMV dos próximos meses a partir da série semanal
	// observada no período.
	PreverCMV(ctx context.Context, desde, ate time.Time, horizonte int) (*analytics.Previsao, error)

	// ExportarCSV serializa a análise por prato em CSV para download.
	ExportarCSV(ctx context.Context) ([]byte, error)

	CriarMeta(ctx context.Context, meta *model.MetaCMV) error
	ListarMetas(ctx context.Context) ([]model.MetaCMV, error)
	AtualizarMeta(ctx context.Context, meta *model.MetaCMV) error
	RemoverMeta(ctx context.Context, id uuid.UUID) error
	ProgressoMetas(ctx context.Context, ref time.Time) ([]ProgressoMeta, error)
}

type cmvService struct {
	pratos     repository.PratoRepository
	movimentos repository.MovimentoEstoqueRepository
	metas      repository.MetaCMVRepository
	cache      *redis.Client
	cacheTTL   time.Duration
}

func NewCMVService(pratos repository.PratoRepository, movimentos repository.MovimentoEstoqueRepository, metas repository.MetaCMVRepository, cache *redis.Client, cacheTTL time.Duration) CMVService {
	return &cmvService{pratos: pratos, movimentos: movimentos, metas: metas, cache: cache, cacheTTL: cacheTTL}
}

func (s *cmvService) AnalisarPratos(ctx context.Context) ([]analytics.AnalisePrato, error) {
	pratos, err := s.pratos.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	analises := make([]analytics.AnalisePrato, 0, len(pratos))
	for i := range pratos {
		analises = append(analises, analytics.AnalisarPrato(&pratos[i]))
	}
	return analises, nil
}

// Resumo usa o cache Redis para absorver consultas repetidas do painel.
// Cache indisponível nunca derruba a consulta, só a deixa mais lenta.
func (s *cmvService) Resumo(ctx context.Context) (*analytics.ResumoCMV, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKeyResumoCMV).Bytes(); err == nil {
			var cached analytics.ResumoCMV
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	analises, err := s.AnalisarPratos(ctx)
	if err != nil {
		return nil, err
	}
	resumo := analytics.Resumo(analises)

	if s.cache != nil {
		if raw, err := json.Marshal(resumo); err == nil {
			if err := s.cache.Set(ctx, cacheKeyResumoCMV, raw, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("falha ao gravar resumo de CMV no cache")
			}
		}
	}
	return &resumo, nil
}

func (s *cmvService) PorCategoria(ctx context.Context) ([]analytics.CMVCategoria, error) {
	analises, err := s.AnalisarPratos(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.PorCategoria(analises), nil
}

func (s *cmvService) TendenciaSemanal(ctx context.Context, desde, ate time.Time) ([]analytics.SemanaCMV, error) {
	movs, err := s.movimentos.ListSaidasComPrato(ctx, desde, ate)
	if err != nil {
		return nil, err
	}
	return analytics.TendenciaSemanal(movs, s.precoPrato(ctx)), nil
}

// precoPrato entrega o preço de venda por prato para a análise semanal,
// com memoização local para não repetir a consulta por bucket.
func (s *cmvService) precoPrato(ctx context.Context) func(uuid.UUID) (decimal.Decimal, bool) {
	memo := make(map[uuid.UUID]*decimal.Decimal)
	return func(id uuid.UUID) (decimal.Decimal, bool) {
		if p, ok := memo[id]; ok {
			if p == nil {
				return decimal.Zero, false
			}
			return *p, true
		}
		prato, err := s.pratos.FindByID(ctx, id)
		if err != nil {
			memo[id] = nil
			return decimal.Zero, false
		}
		memo[id] = &prato.Preco
		return prato.Preco, true
	}
}

func (s *cmvService) PreverCMV(ctx context.Context, desde, ate time.Time, horizonte int) (*analytics.Previsao, error) {
	semanas, err := s.TendenciaSemanal(ctx, desde, ate)
	if err != nil {
		return nil, err
	}
	var serie []analytics.PontoSerie
	for _, sem := range semanas {
		if sem.CMVPercentual == nil {
			continue
		}
		// Ponto ancorado no primeiro dia da semana do bucket.
		dia := (sem.Semana-1)*7 + 1
		data := time.Date(sem.Ano, time.Month(sem.Mes), dia, 0, 0, 0, 0, time.UTC)
		valor, _ := sem.CMVPercentual.Float64()
		serie = append(serie, analytics.PontoSerie{Data: data, Valor: valor})
	}
	return analytics.Prever(serie, horizonte, 0.95)
}

func (s *cmvService) ExportarCSV(ctx context.Context) ([]byte, error) {
	analises, err := s.AnalisarPratos(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"prato", "categoria", "preco_venda", "custo", "cmv_percentual", "margem_percentual", "classificacao"}); err != nil {
		return nil, err
	}
	for _, a := range analises {
		cmv, margem := "", ""
		if a.CMVPercentual != nil {
			cmv = a.CMVPercentual.StringFixed(2)
		}
		if a.MargemPercentual != nil {
			margem = a.MargemPercentual.StringFixed(2)
		}
		if err := w.Write([]string{
			a.Nome,
			a.Categoria,
			a.Preco.StringFixed(2),
			a.Custo.StringFixed(2),
			cmv,
			margem,
			a.Classificacao,
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *cmvService) CriarMeta(ctx context.Context, meta *model.MetaCMV) error {
	if err := validarMeta(meta); err != nil {
		return err
	}
	return s.metas.Create(ctx, meta)
}

func (s *cmvService) ListarMetas(ctx context.Context) ([]model.MetaCMV, error) {
	return s.metas.List(ctx)
}

func (s *cmvService) AtualizarMeta(ctx context.Context, meta *model.MetaCMV) error {
	if err := validarMeta(meta); err != nil {
		return err
	}
	return s.metas.Update(ctx, meta)
}

func (s *cmvService) RemoverMeta(ctx context.Context, id uuid.UUID) error {
	return s.metas.Delete(ctx, id)
}

func validarMeta(meta *model.MetaCMV) error {
	if meta.CategoriaID != nil && meta.PratoID != nil {
		return ErrEscopoMetaInvalido
	}
	if meta.DataFim.Before(meta.DataInicio) {
		return ErrPeriodoMetaInvalido
	}
	cem := decimal.NewFromInt(100)
	if !meta.PercentualAlvo.IsPositive() || meta.PercentualAlvo.GreaterThan(cem) {
		return ErrAlvoMetaInvalido
	}
	return nil
}

func (s *cmvService) ProgressoMetas(ctx context.Context, ref time.Time) ([]ProgressoMeta, error) {
	metas, err := s.metas.ListVigentes(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(metas) == 0 {
		return nil, nil
	}
	analises, err := s.AnalisarPratos(ctx)
	if err != nil {
		return nil, err
	}
	porCategoria := analytics.PorCategoria(analises)
	resumo := analytics.Resumo(analises)

	progresso := make([]ProgressoMeta, 0, len(metas))
	for _, meta := range metas {
		p := ProgressoMeta{Meta: meta}
		switch meta.Escopo() {
		case model.EscopoGeral:
			p.Realizado = resumo.CMVMedio
		case model.EscopoCategoria:
			for _, cat := range porCategoria {
				if meta.Categoria != nil && cat.Nome == meta.Categoria.Nome {
					p.Realizado = cat.CMVPercentual
					break
				}
			}
		case model.EscopoPrato:
			for i := range analises {
				if analises[i].ID == *meta.PratoID {
					p.Realizado = analises[i].CMVPercentual
					break
				}
			}
		}
		p.Atingida = p.Realizado != nil && p.Realizado.LessThanOrEqual(meta.PercentualAlvo)
		progresso = append(progresso, p)
	}
	return progresso, nil
}
