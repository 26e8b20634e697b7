package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/analytics"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/apierror"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/dto"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/service"
)

type CMVHandler struct {
	svc             service.CMVService
	horizontePadrao int
}

func NewCMVHandler(svc service.CMVService, horizontePadrao int) *CMVHandler {
	return &CMVHandler{svc: svc, horizontePadrao: horizontePadrao}
}

// Analises godoc
// @Summary Análise de CMV por prato
// @Tags cmv
// @Produce json
// @Success 200 {array} analytics.AnalisePrato
// @Router /v1/cmv/pratos [get]
func (h *CMVHandler) Analises(c *gin.Context) {
	analises, err := h.svc.AnalisarPratos(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, analises)
}

func (h *CMVHandler) Resumo(c *gin.Context) {
	resumo, err := h.svc.Resumo(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resumo)
}

func (h *CMVHandler) PorCategoria(c *gin.Context) {
	grupos, err := h.svc.PorCategoria(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, grupos)
}

func (h *CMVHandler) TendenciaSemanal(c *gin.Context) {
	desde, ate, ok := periodo(c)
	if !ok {
		return
	}
	semanas, err := h.svc.TendenciaSemanal(c.Request.Context(), desde, ate)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, semanas)
}

// Previsao godoc
// @Summary Projeção de CMV por regressão linear sobre a série semanal
// @Tags cmv
// @Produce json
// @Param desde query string false "YYYY-MM-DD"
// @Param ate query string false "YYYY-MM-DD"
// @Param horizonte query int false "Meses projetados"
// @Success 200 {object} analytics.Previsao
// @Failure 422 {object} apierror.APIError
// @Router /v1/cmv/previsao [get]
func (h *CMVHandler) Previsao(c *gin.Context) {
	desde, ate, ok := periodo(c)
	if !ok {
		return
	}
	horizonte := h.horizontePadrao
	if raw := c.Query("horizonte"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 24 {
			c.JSON(http.StatusBadRequest, apierror.New("horizonte inválido (1-24)"))
			return
		}
		horizonte = n
	}
	previsao, err := h.svc.PreverCMV(c.Request.Context(), desde, ate, horizonte)
	if err != nil {
		if errors.Is(err, analytics.ErrDadosInsuficientes) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
			return
		}
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, previsao)
}

func (h *CMVHandler) ExportarCSV(c *gin.Context) {
	raw, err := h.svc.ExportarCSV(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="analise-cmv.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", raw)
}

func (h *CMVHandler) CriarMeta(c *gin.Context) {
	var req dto.MetaCMVRequest
	if !bindAndValidate(c, &req) {
		return
	}
	meta, ok := parseMeta(c, req)
	if !ok {
		return
	}
	meta.CriadoPor = responsavelOuVazio(c)
	if err := h.svc.CriarMeta(c.Request.Context(), meta); err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMetaDTO(meta))
}

func (h *CMVHandler) ListarMetas(c *gin.Context) {
	metas, err := h.svc.ListarMetas(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.MetaCMVResponse, 0, len(metas))
	for i := range metas {
		resp = append(resp, toMetaDTO(&metas[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CMVHandler) AtualizarMeta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.MetaCMVRequest
	if !bindAndValidate(c, &req) {
		return
	}
	meta, ok := parseMeta(c, req)
	if !ok {
		return
	}
	meta.ID = id
	if err := h.svc.AtualizarMeta(c.Request.Context(), meta); err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toMetaDTO(meta))
}

func (h *CMVHandler) RemoverMeta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.RemoverMeta(c.Request.Context(), id); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CMVHandler) ProgressoMetas(c *gin.Context) {
	progresso, err := h.svc.ProgressoMetas(c.Request.Context(), time.Now())
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.ProgressoMetaResponse, 0, len(progresso))
	for _, p := range progresso {
		meta := p.Meta
		resp = append(resp, dto.ProgressoMetaResponse{
			Meta:      toMetaDTO(&meta),
			Realizado: p.Realizado,
			Atingida:  p.Atingida,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// periodo resolve desde/ate da query string. Sem parâmetros, cobre os
// últimos 90 dias.
func periodo(c *gin.Context) (time.Time, time.Time, bool) {
	agora := time.Now()
	desde := agora.AddDate(0, 0, -90)
	ate := agora
	if raw := c.Query("desde"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde inválido (YYYY-MM-DD)"))
			return time.Time{}, time.Time{}, false
		}
		desde = t
	}
	if raw := c.Query("ate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("ate inválido (YYYY-MM-DD)"))
			return time.Time{}, time.Time{}, false
		}
		ate = t.AddDate(0, 0, 1)
	}
	return desde, ate, true
}

func parseMeta(c *gin.Context, req dto.MetaCMVRequest) (*model.MetaCMV, bool) {
	meta := &model.MetaCMV{
		Nome:           req.Nome,
		PercentualAlvo: req.PercentualAlvo,
	}
	if req.CategoriaID != nil {
		id, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("categoria_id inválido"))
			return nil, false
		}
		meta.CategoriaID = &id
	}
	if req.PratoID != nil {
		id, err := uuid.Parse(*req.PratoID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("prato_id inválido"))
			return nil, false
		}
		meta.PratoID = &id
	}
	inicio, err := time.Parse("2006-01-02", req.DataInicio)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("data_inicio inválida"))
		return nil, false
	}
	fim, err := time.Parse("2006-01-02", req.DataFim)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("data_fim inválida"))
		return nil, false
	}
	meta.DataInicio = inicio
	meta.DataFim = fim
	return meta, true
}

func toMetaDTO(meta *model.MetaCMV) dto.MetaCMVResponse {
	resp := dto.MetaCMVResponse{
		ID:             meta.ID.String(),
		Nome:           meta.Nome,
		PercentualAlvo: meta.PercentualAlvo,
		Escopo:         meta.Escopo(),
		DataInicio:     meta.DataInicio.Format("2006-01-02"),
		DataFim:        meta.DataFim.Format("2006-01-02"),
	}
	if meta.CategoriaID != nil {
		id := meta.CategoriaID.String()
		resp.CategoriaID = &id
	}
	if meta.PratoID != nil {
		id := meta.PratoID.String()
		resp.PratoID = &id
	}
	return resp
}
