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

type VendasHandler struct{ svc service.VendaService }

func NewVendasHandler(svc service.VendaService) *VendasHandler {
	return &VendasHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra uma venda de balcão e desconta o estoque dos pratos
// @Tags vendas
// @Accept json
// @Produce json
// @Param body body dto.RegistrarVendaRequest true "Itens vendidos"
// @Success 201 {object} dto.VendaResponse
// @Failure 409 {object} dto.EstoqueInsuficienteResponse
// @Router /v1/vendas [post]
func (h *VendasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuario := usuarioIDAtual(c)
	if usuario == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("token de acesso ausente"))
		return
	}
	itens := make([]service.ItemVenda, 0, len(req.Itens))
	for _, it := range req.Itens {
		pratoID, err := uuid.Parse(it.PratoID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("prato_id inválido"))
			return
		}
		itens = append(itens, service.ItemVenda{PratoID: pratoID, Quantidade: it.Quantidade})
	}
	venda, err := h.svc.Registrar(c.Request.Context(), *usuario, itens)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVendaDTO(venda))
}

func (h *VendasHandler) Listar(c *gin.Context) {
	var desde, ate *time.Time
	if raw := c.Query("desde"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde inválido (YYYY-MM-DD)"))
			return
		}
		desde = &t
	}
	if raw := c.Query("ate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("ate inválido (YYYY-MM-DD)"))
			return
		}
		fim := t.AddDate(0, 0, 1)
		ate = &fim
	}
	vendas, err := h.svc.Listar(c.Request.Context(), desde, ate)
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		resp = append(resp, toVendaDTO(&vendas[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VendasHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	venda, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toVendaDTO(venda))
}

func toVendaDTO(v *model.Venda) dto.VendaResponse {
	resp := dto.VendaResponse{
		ID:         v.ID.String(),
		UsuarioID:  v.UsuarioID,
		ValorTotal: v.ValorTotal,
		Status:     v.Status,
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
	resp.Itens = make([]dto.ItemVendaResponse, 0, len(v.Itens))
	for _, it := range v.Itens {
		out := dto.ItemVendaResponse{
			PratoID:       it.PratoID.String(),
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
			PrecoTotal:    it.PrecoTotal,
		}
		if it.Prato != nil {
			out.Prato = it.Prato.Nome
		}
		resp.Itens = append(resp.Itens, out)
	}
	return resp
}
