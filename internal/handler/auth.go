package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/apierror"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/dto"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/middleware"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/service"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Autentica um usuário e devolve o par de tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pair, usuario, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		Usuario:      toUsuarioDTO(usuario),
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("token de acesso ausente"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       claims.Subject,
		"username": claims.Username,
		"nome":     claims.Nome,
		"rol":      claims.Rol,
	})
}

func (h *AuthHandler) CriarUsuario(c *gin.Context) {
	var req dto.CriarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	u, err := h.svc.CriarUsuario(c.Request.Context(), req.Username, req.Nome, req.Password, req.Rol)
	if err != nil {
		respondErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUsuarioDTO(u))
}

func (h *AuthHandler) ListarUsuarios(c *gin.Context) {
	usuarios, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		respondErro(c, err)
		return
	}
	resp := make([]dto.UsuarioDTO, 0, len(usuarios))
	for i := range usuarios {
		resp = append(resp, toUsuarioDTO(&usuarios[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) TrocarSenha(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("token de acesso ausente"))
		return
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("token inválido"))
		return
	}
	var req dto.TrocarSenhaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.TrocarSenha(c.Request.Context(), id, req.SenhaAtual, req.SenhaNova); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) DesativarUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DesativarUsuario(c.Request.Context(), id); err != nil {
		respondErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toUsuarioDTO(u *model.Usuario) dto.UsuarioDTO {
	return dto.UsuarioDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		Nome:     u.Nome,
		Rol:      u.Rol,
		Ativo:    u.Ativo,
	}
}
