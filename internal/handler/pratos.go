package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/apierror"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/dto"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/service"
)

type PratosHandler struct{ svc service.PratoService }

func NewPratosHandler(svc service.PratoService) *PratosHandler {
	return &PratosHandler{svc: svc}
}

func (h *PratosHandler) Criar(c *gin.Context) {
	var req dto.PratoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	prato := &model.Prato{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Preco:     req.Preco,
	}
	if req.CategoriaID != nil {
		id, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("categoria_id inválido"))
			return
		}
		prato.CategoriaID = &id
	}
	ingredientes, ok := parseIngredientes(c, req.Ingredientes)
	if !ok {
		return
	}
	prato.Ingredientes = ingredientes
	if err := h.svc.Criar(c.Request.Context(), prato); err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPratoDTO(prato))
}

func (h *PratosHandler) Listar(c *gin.Context) {
	var categoriaID *uuid.UUID
	if raw := c.Query("categoria_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("categoria_id inválido"))
			return
		}
		categoriaID = &id
	}
	pratos, err := h.svc.Listar(c.Request.Context(), categoriaID)
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.PratoResponse, 0, len(pratos))
	for i := range pratos {
		resp = append(resp, toPratoDTO(&pratos[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PratosHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	prato, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toPratoDTO(prato))
}

func (h *PratosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarPratoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	prato, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	prato.Nome = req.Nome
	prato.Descricao = req.Descricao
	prato.Preco = req.Preco
	prato.CategoriaID = nil
	if req.CategoriaID != nil {
		catID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("categoria_id inválido"))
			return
		}
		prato.CategoriaID = &catID
	}
	var ingredientes []model.PratoIngrediente
	if req.Ingredientes != nil {
		var ok bool
		ingredientes, ok = parseIngredientes(c, req.Ingredientes)
		if !ok {
			return
		}
	}
	if err := h.svc.Atualizar(c.Request.Context(), prato, ingredientes); err != nil {
		respondErro(c, err)
		return
	}
	atualizado, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toPratoDTO(atualizado))
}

func (h *PratosHandler) Remover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Remover(c.Request.Context(), id); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AnalisarCusto godoc
// @Summary Custo da ficha técnica e CMV do prato
// @Tags pratos
// @Produce json
// @Param id path string true "ID do prato"
// @Success 200 {object} analytics.AnalisePrato
// @Failure 404 {object} apierror.APIError
// @Router /v1/pratos/{id}/custo [get]
func (h *PratosHandler) AnalisarCusto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	analise, err := h.svc.AnalisarCusto(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, analise)
}

func parseIngredientes(c *gin.Context, reqs []dto.IngredienteRequest) ([]model.PratoIngrediente, bool) {
	ingredientes := make([]model.PratoIngrediente, 0, len(reqs))
	for _, ing := range reqs {
		itemID, err := uuid.Parse(ing.StockItemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("stock_item_id inválido"))
			return nil, false
		}
		if !ing.Quantidade.IsPositive() {
			c.JSON(http.StatusUnprocessableEntity, apierror.New("quantidade do ingrediente deve ser positiva"))
			return nil, false
		}
		ingredientes = append(ingredientes, model.PratoIngrediente{
			StockItemID: itemID,
			Quantidade:  ing.Quantidade,
			Unidade:     ing.Unidade,
		})
	}
	return ingredientes, true
}

func toPratoDTO(p *model.Prato) dto.PratoResponse {
	resp := dto.PratoResponse{
		ID:        p.ID.String(),
		Nome:      p.Nome,
		Descricao: p.Descricao,
		Preco:     p.Preco,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if p.CategoriaID != nil {
		id := p.CategoriaID.String()
		resp.CategoriaID = &id
	}
	if p.Categoria != nil {
		resp.Categoria = &p.Categoria.Nome
	}
	resp.Ingredientes = make([]dto.IngredienteResponse, 0, len(p.Ingredientes))
	for _, ing := range p.Ingredientes {
		out := dto.IngredienteResponse{
			StockItemID: ing.StockItemID.String(),
			Quantidade:  ing.Quantidade,
			Unidade:     ing.Unidade,
		}
		if ing.StockItem != nil {
			out.Item = ing.StockItem.Nome
		}
		resp.Ingredientes = append(resp.Ingredientes, out)
	}
	return resp
}
