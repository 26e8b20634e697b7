package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/apierror"
)

const claimsKey = "jwt_claims"

// Papéis de acesso, em ordem crescente de privilégio.
const (
	RolAtendente     = "atendente"
	RolGerente       = "gerente"
	RolAdministrador = "administrador"
)

// JWTClaims são as claims emitidas no login.
type JWTClaims struct {
	Username  string `json:"username"`
	Nome      string `json:"nome"`
	Rol       string `json:"rol"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTAuth valida o bearer token e injeta as claims no contexto da requisição.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(401, apierror.New("token de acesso ausente"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("método de assinatura inesperado")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.TokenType != "access" {
			c.AbortWithStatusJSON(401, apierror.New("token inválido ou expirado"))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole libera a rota apenas para os papéis listados.
func RequireRole(roles ...string) gin.HandlerFunc {
	permitidos := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		permitidos[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(401, apierror.New("token de acesso ausente"))
			return
		}
		if _, ok := permitidos[claims.Rol]; !ok {
			c.AbortWithStatusJSON(403, apierror.New("permissão insuficiente"))
			return
		}
		c.Next()
	}
}

// GetClaims recupera as claims injetadas pelo JWTAuth. Nulo fora de rotas
// autenticadas.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
