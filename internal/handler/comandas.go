package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/apierror"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/dto"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/service"
)

type ComandasHandler struct {
	svc             service.ComandaService
	nomeRestaurante string
	pdfStoragePath  string
}

func NewComandasHandler(svc service.ComandaService, nomeRestaurante, pdfStoragePath string) *ComandasHandler {
	return &ComandasHandler{svc: svc, nomeRestaurante: nomeRestaurante, pdfStoragePath: pdfStoragePath}
}

func (h *ComandasHandler) Criar(c *gin.Context) {
	var req dto.CriarComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	responsavel := usuarioIDAtual(c)
	if responsavel == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("token de acesso ausente"))
		return
	}
	itens, ok := parseItensComanda(c, req.Itens)
	if !ok {
		return
	}
	comanda := &model.Comanda{
		ClienteNome:   req.ClienteNome,
		MesaNumero:    req.MesaNumero,
		ResponsavelID: *responsavel,
	}
	criada, err := h.svc.Criar(c.Request.Context(), comanda, itens)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, toComandaDTO(criada))
}

func (h *ComandasHandler) Listar(c *gin.Context) {
	comandas, err := h.svc.Listar(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.ComandaResponse, 0, len(comandas))
	for i := range comandas {
		resp = append(resp, toComandaDTO(&comandas[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComandasHandler) Buscar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	comanda, err := h.svc.Buscar(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toComandaDTO(comanda))
}

func (h *ComandasHandler) AdicionarItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ItemComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pratoID, err := uuid.Parse(req.PratoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("prato_id inválido"))
		return
	}
	responsavel := responsavelOuVazio(c)
	comanda, err := h.svc.AdicionarItem(c.Request.Context(), id, service.NovoItemComanda{
		PratoID:     pratoID,
		Quantidade:  req.Quantidade,
		Observacoes: req.Observacoes,
	}, responsavel)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toComandaDTO(comanda))
}

func (h *ComandasHandler) EditarItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("itemId inválido"))
		return
	}
	var req dto.EditarItemComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	comanda, err := h.svc.EditarItem(c.Request.Context(), id, itemID, req.Quantidade, req.Observacoes, responsavelOuVazio(c))
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toComandaDTO(comanda))
}

func (h *ComandasHandler) RemoverItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("itemId inválido"))
		return
	}
	comanda, err := h.svc.RemoverItem(c.Request.Context(), id, itemID, responsavelOuVazio(c))
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toComandaDTO(comanda))
}

func (h *ComandasHandler) AtualizarStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	comanda, err := h.svc.AtualizarStatus(c.Request.Context(), id, req.Status, responsavelOuVazio(c))
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, toComandaDTO(comanda))
}

func (h *ComandasHandler) Separar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.SepararComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		itemID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("item_ids inválido"))
			return
		}
		itemIDs = append(itemIDs, itemID)
	}
	nova, err := h.svc.Separar(c.Request.Context(), id, itemIDs, req.ClienteNome, responsavelOuVazio(c))
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, toComandaDTO(nova))
}

func (h *ComandasHandler) Historico(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	hist, err := h.svc.Historico(c.Request.Context(), id)
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.HistoricoResponse, 0, len(hist))
	for _, entrada := range hist {
		resp = append(resp, dto.HistoricoResponse{
			Acao:          entrada.Acao,
			Descricao:     entrada.Descricao,
			ResponsavelID: entrada.ResponsavelID,
			CreatedAt:     entrada.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// GerarPDF emite o recibo da comanda e devolve o arquivo.
func (h *ComandasHandler) GerarPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	path, err := h.svc.GerarPDF(c.Request.Context(), id, h.nomeRestaurante, h.pdfStoragePath)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.FileAttachment(path, "comanda-"+id.String()+".pdf")
}

func parseItensComanda(c *gin.Context, reqs []dto.ItemComandaRequest) ([]service.NovoItemComanda, bool) {
	itens := make([]service.NovoItemComanda, 0, len(reqs))
	for _, it := range reqs {
		pratoID, err := uuid.Parse(it.PratoID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("prato_id inválido"))
			return nil, false
		}
		itens = append(itens, service.NovoItemComanda{
			PratoID:     pratoID,
			Quantidade:  it.Quantidade,
			Observacoes: it.Observacoes,
		})
	}
	return itens, true
}

func responsavelOuVazio(c *gin.Context) string {
	if id := usuarioIDAtual(c); id != nil {
		return *id
	}
	return ""
}

func toComandaDTO(comanda *model.Comanda) dto.ComandaResponse {
	resp := dto.ComandaResponse{
		ID:            comanda.ID.String(),
		ClienteNome:   comanda.ClienteNome,
		MesaNumero:    comanda.MesaNumero,
		ResponsavelID: comanda.ResponsavelID,
		Status:        comanda.Status,
		ValorTotal:    comanda.ValorTotal,
		CreatedAt:     comanda.CreatedAt.Format(time.RFC3339),
	}
	resp.Itens = make([]dto.ItemComandaResponse, 0, len(comanda.Itens))
	for _, it := range comanda.Itens {
		out := dto.ItemComandaResponse{
			ID:            it.ID.String(),
			PratoID:       it.PratoID.String(),
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario,
			Subtotal:      it.ValorUnitario.Mul(decimal.NewFromInt(int64(it.Quantidade))),
			Observacoes:   it.Observacoes,
		}
		if it.Prato != nil {
			out.Prato = it.Prato.Nome
		}
		resp.Itens = append(resp.Itens, out)
	}
	return resp
}
