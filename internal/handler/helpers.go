package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/LucGadelha/projeto-estoque-cmv/internal/apierror"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/dto"
	"github.com/LucGadelha/projeto-estoque-cmv/internal/service"
)

var validate = validator.New()

func init() {
	// Registra decimal.Decimal como tipo numérico para as tags min/gt/required
	// funcionarem sem panic ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate faz o bind do corpo JSON e roda as tags do validator.
// Devolve false já tendo escrito a resposta de erro.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondErro mapeia os erros de domínio dos serviços para o status HTTP
// correspondente. Erros desconhecidos viram 500 genérico.
func respondErro(c *gin.Context, err error) {
	var faltas *service.EstoqueInsuficienteError
	var unidade *service.UnidadeIncompativelError

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Registro não encontrado"))
	case errors.Is(err, service.ErrSemIngredientes):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrComandaFechada):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrEscopoMetaInvalido),
		errors.Is(err, service.ErrPeriodoMetaInvalido),
		errors.Is(err, service.ErrAlvoMetaInvalido),
		errors.Is(err, service.ErrQuantidadeInvalida):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCredenciaisInvalidas):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, service.ErrUsuarioInativo):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.As(err, &faltas):
		resp := dto.EstoqueInsuficienteResponse{Detail: "Estoque insuficiente"}
		for _, f := range faltas.Faltas {
			resp.Faltas = append(resp.Faltas, dto.FaltaDTO{
				ItemID:     f.ItemID,
				Item:       f.ItemNome,
				Disponivel: f.Disponivel,
				Necessario: f.Necessario,
				Unidade:    f.Unidade,
			})
		}
		c.JSON(http.StatusConflict, resp)
	case errors.As(err, &unidade):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
	}
}
