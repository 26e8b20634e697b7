package dto

type CategoriaRequest struct {
	Nome string `json:"nome" validate:"required,min=2"`
	Tipo string `json:"tipo" validate:"required,oneof=estoque prato"`
}

type CategoriaResponse struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
	Tipo string `json:"tipo"`
}
