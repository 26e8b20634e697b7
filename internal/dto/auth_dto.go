package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
	Usuario      UsuarioDTO `json:"usuario"`
}

type UsuarioDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nome     string `json:"nome"`
	Rol      string `json:"rol"`
	Ativo    bool   `json:"ativo"`
}

type CriarUsuarioRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Nome     string `json:"nome"     validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol"      validate:"required,oneof=atendente gerente administrador"`
}

type TrocarSenhaRequest struct {
	SenhaAtual string `json:"senha_atual" validate:"required"`
	SenhaNova  string `json:"senha_nova"  validate:"required,min=6"`
}
