package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/apierror"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/dto"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/middleware"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/service"
)

type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{svc: svc}
}

func (h *EstoqueHandler) Criar(c *gin.Context) {
	var req dto.StockItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item := &model.StockItem{
		Nome:             req.Nome,
		Unidade:          req.Unidade,
		Quantidade:       req.Quantidade,
		Preco:            req.Preco,
		QuantidadeMinima: req.QuantidadeMinima,
	}
	if req.CategoriaID != nil {
		id, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("categoria_id inválido"))
			return
		}
		item.CategoriaID = &id
	}
	if err := h.svc.CriarItem(c.Request.Context(), item); err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStockItemDTO(item))
}

func (h *EstoqueHandler) Listar(c *gin.Context) {
	var categoriaID *uuid.UUID
	if raw := c.Query("categoria_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("categoria_id inválido"))
			return
		}
		categoriaID = &id
	}
	itens, err := h.svc.ListarItens(c.Request.Context(), categoriaID)
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.StockItemResponse, 0, len(itens))
	for i := range itens {
		resp = append(resp, toStockItemDTO(&itens[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstoqueHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	item, err := h.svc.BuscarItem(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toStockItemDTO(item))
}

func (h *EstoqueHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.StockItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.BuscarItem(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	item.Nome = req.Nome
	item.Unidade = req.Unidade
	item.Preco = req.Preco
	item.QuantidadeMinima = req.QuantidadeMinima
	item.CategoriaID = nil
	if req.CategoriaID != nil {
		catID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("categoria_id inválido"))
			return
		}
		item.CategoriaID = &catID
	}
	if err := h.svc.AtualizarItem(c.Request.Context(), item); err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toStockItemDTO(item))
}

func (h *EstoqueHandler) Remover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.RemoverItem(c.Request.Context(), id); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Ajustar godoc
// @Summary Registra entrada ou saída manual de estoque
// @Tags estoque
// @Accept json
// @Produce json
// @Param id path string true "ID do item"
// @Param body body dto.AjusteEstoqueRequest true "Ajuste"
// @Success 201 {object} dto.MovimentoResponse
// @Failure 409 {object} dto.EstoqueInsuficienteResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/estoque/{id}/ajustes [post]
func (h *EstoqueHandler) Ajustar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AjusteEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	mov, err := h.svc.Ajustar(c.Request.Context(), service.AjusteEstoque{
		StockItemID: id,
		Tipo:        req.Tipo,
		Quantidade:  req.Quantidade,
		Unidade:     req.Unidade,
		UsuarioID:   usuarioIDAtual(c),
		Observacoes: req.Observacoes,
	})
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMovimentoDTO(mov))
}

func (h *EstoqueHandler) PrepararPrato(c *gin.Context) {
	pratoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.PreparoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	movs, err := h.svc.PrepararPrato(c.Request.Context(), pratoID, req.Porcoes, usuarioIDAtual(c))
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.MovimentoResponse, 0, len(movs))
	for i := range movs {
		resp = append(resp, toMovimentoDTO(&movs[i]))
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EstoqueHandler) PrepararLote(c *gin.Context) {
	var req dto.PreparoLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	preparos := make([]service.PreparoPrato, 0, len(req.Pratos))
	for _, p := range req.Pratos {
		pratoID, err := uuid.Parse(p.PratoID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("prato_id inválido"))
			return
		}
		preparos = append(preparos, service.PreparoPrato{PratoID: pratoID, Porcoes: p.Porcoes})
	}
	movs, err := h.svc.PrepararLote(c.Request.Context(), preparos, usuarioIDAtual(c))
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.MovimentoResponse, 0, len(movs))
	for i := range movs {
		resp = append(resp, toMovimentoDTO(&movs[i]))
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EstoqueHandler) Alertas(c *gin.Context) {
	itens, err := h.svc.AlertasEstoqueBaixo(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.StockItemResponse, 0, len(itens))
	for i := range itens {
		resp = append(resp, toStockItemDTO(&itens[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstoqueHandler) Movimentos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	var (
		movs []model.MovimentoEstoque
		err  error
	)
	if raw := c.Query("item_id"); raw != "" {
		itemID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, apierror.New("item_id inválido"))
			return
		}
		movs, err = h.svc.MovimentosDoItem(c.Request.Context(), itemID, limit)
	} else {
		movs, err = h.svc.MovimentosRecentes(c.Request.Context(), limit)
	}
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.MovimentoResponse, 0, len(movs))
	for i := range movs {
		resp = append(resp, toMovimentoDTO(&movs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func usuarioIDAtual(c *gin.Context) *string {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	id := claims.Subject
	return &id
}

func toStockItemDTO(item *model.StockItem) dto.StockItemResponse {
	resp := dto.StockItemResponse{
		ID:               item.ID.String(),
		Nome:             item.Nome,
		Unidade:          item.Unidade,
		Quantidade:       item.Quantidade,
		Preco:            item.Preco,
		QuantidadeMinima: item.QuantidadeMinima,
		EstoqueBaixo:     item.EstoqueBaixo(),
		CreatedAt:        item.CreatedAt.Format(time.RFC3339),
	}
	if item.CategoriaID != nil {
		id := item.CategoriaID.String()
		resp.CategoriaID = &id
	}
	if item.Categoria != nil {
		resp.Categoria = &item.Categoria.Nome
	}
	return resp
}

func toMovimentoDTO(m *model.MovimentoEstoque) dto.MovimentoResponse {
	resp := dto.MovimentoResponse{
		ID:          m.ID.String(),
		StockItemID: m.StockItemID.String(),
		Tipo:        m.Tipo,
		Quantidade:  m.Quantidade,
		Unidade:     m.Unidade,
		UsuarioID:   m.UsuarioID,
		Observacoes: m.Observacoes,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.StockItem != nil {
		resp.Item = m.StockItem.Nome
	}
	if m.Prato != nil {
		resp.Prato = &m.Prato.Nome
	}
	return resp
}
