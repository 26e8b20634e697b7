package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/apierror"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/dto"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/service"
)

type CategoriasHandler struct{ svc service.CategoriaService }

func NewCategoriasHandler(svc service.CategoriaService) *CategoriasHandler {
	return &CategoriasHandler{svc: svc}
}

func (h *CategoriasHandler) Criar(c *gin.Context) {
	var req dto.CategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cat := &model.Categoria{Nome: req.Nome, Tipo: req.Tipo}
	if err := h.svc.Criar(c.Request.Context(), cat); err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoriaDTO(cat))
}

func (h *CategoriasHandler) Listar(c *gin.Context) {
	cats, err := h.svc.Listar(c.Request.Context(), c.Query("tipo"))
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.CategoriaResponse, 0, len(cats))
	for i := range cats {
		resp = append(resp, toCategoriaDTO(&cats[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoriasHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cat, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	cat.Nome = req.Nome
	cat.Tipo = req.Tipo
	if err := h.svc.Atualizar(c.Request.Context(), cat); err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoriaDTO(cat))
}

func (h *CategoriasHandler) Remover(c *gin.Context) {
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

func toCategoriaDTO(cat *model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{ID: cat.ID.String(), Nome: cat.Nome, Tipo: cat.Tipo}
}
