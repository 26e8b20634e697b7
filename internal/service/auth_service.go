package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/middleware"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/model"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/repository"
)

// TokenPair é o par de tokens devolvido no login e no refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthService interface {
	Login(ctx context.Context, username, senha string) (*TokenPair, *model.Usuario, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	CriarUsuario(ctx context.Context, username, nome, senha, rol string) (*model.Usuario, error)
	ListarUsuarios(ctx context.Context) ([]model.Usuario, error)
	AtualizarUsuario(ctx context.Context, u *model.Usuario) error
	TrocarSenha(ctx context.Context, id uuid.UUID, senhaAtual, senhaNova string) error
	DesativarUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	usuarios   repository.UsuarioRepository
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(usuarios repository.UsuarioRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{usuarios: usuarios, jwtSecret: jwtSecret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *authService) Login(ctx context.Context, username, senha string) (*TokenPair, *model.Usuario, error) {
	u, err := s.usuarios.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCredenciaisInvalidas
		}
		return nil, nil, err
	}
	if !u.Ativo {
		return nil, nil, ErrUsuarioInativo
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(senha)) != nil {
		return nil, nil, ErrCredenciaisInvalidas
	}
	pair, err := s.emitir(u)
	if err != nil {
		return nil, nil, err
	}
	return pair, u, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims := &middleware.JWTClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura inesperado")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.TokenType != "refresh" {
		return nil, ErrCredenciaisInvalidas
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrCredenciaisInvalidas
	}
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return nil, ErrCredenciaisInvalidas
	}
	if !u.Ativo {
		return nil, ErrUsuarioInativo
	}
	return s.emitir(u)
}

func (s *authService) emitir(u *model.Usuario) (*TokenPair, error) {
	agora := time.Now()
	access, err := s.assinar(u, "access", agora.Add(s.accessTTL))
	if err != nil {
		return nil, err
	}
	refresh, err := s.assinar(u, "refresh", agora.Add(s.refreshTTL))
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *authService) assinar(u *model.Usuario, tipo string, exp time.Time) (string, error) {
	claims := middleware.JWTClaims{
		Username:  u.Username,
		Nome:      u.Nome,
		Rol:       u.Rol,
		TokenType: tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) CriarUsuario(ctx context.Context, username, nome, senha, rol string) (*model.Usuario, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.Usuario{
		Username:     username,
		Nome:         nome,
		PasswordHash: string(hash),
		Rol:          rol,
		Ativo:        true,
	}
	if err := s.usuarios.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]model.Usuario, error) {
	return s.usuarios.List(ctx)
}

func (s *authService) AtualizarUsuario(ctx context.Context, u *model.Usuario) error {
	return s.usuarios.Update(ctx, u)
}

func (s *authService) TrocarSenha(ctx context.Context, id uuid.UUID, senhaAtual, senhaNova string) error {
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(senhaAtual)) != nil {
		return ErrCredenciaisInvalidas
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(senhaNova), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.usuarios.Update(ctx, u)
}

func (s *authService) DesativarUsuario(ctx context.Context, id uuid.UUID) error {
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	u.Ativo = false
	return s.usuarios.Update(ctx, u)
}
