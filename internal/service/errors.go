package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Erros de domínio dos serviços. Os handlers mapeiam cada um para o
// status HTTP correspondente.
var (
	ErrNotFound             = errors.New("registro não encontrado")
	ErrSemIngredientes      = errors.New("prato sem ingredientes cadastrados")
	ErrComandaFechada       = errors.New("comanda finalizada ou cancelada não aceita alterações")
	ErrEscopoMetaInvalido   = errors.New("meta deve ter no máximo um escopo: categoria ou prato")
	ErrPeriodoMetaInvalido  = errors.New("data final da meta anterior à data inicial")
	ErrAlvoMetaInvalido     = errors.New("percentual alvo da meta deve estar entre 0 e 100")
	ErrCredenciaisInvalidas = errors.New("usuário ou senha inválidos")
	ErrUsuarioInativo       = errors.New("usuário desativado")
	ErrQuantidadeInvalida   = errors.New("quantidade deve ser positiva")
)

// Falta descreve a insuficiência de um item durante uma baixa de estoque.
type Falta struct {
	ItemID     string
	ItemNome   string
	Disponivel decimal.Decimal
	Necessario decimal.Decimal
	Unidade    string
}

func (f Falta) String() string {
	return fmt.Sprintf("%s: disponível %s %s, necessário %s %s",
		f.ItemNome, f.Disponivel.String(), f.Unidade, f.Necessario.String(), f.Unidade)
}

// EstoqueInsuficienteError carrega todas as faltas detectadas antes de a
// operação ser abortada. Nenhum desconto parcial acontece.
type EstoqueInsuficienteError struct {
	Faltas []Falta
}

func (e *EstoqueInsuficienteError) Error() string {
	descr := make([]string, len(e.Faltas))
	for i, f := range e.Faltas {
		descr[i] = f.String()
	}
	return "estoque insuficiente: " + strings.Join(descr, "; ")
}

// UnidadeIncompativelError indica que a unidade pedida não converte para a
// unidade nativa do item.
type UnidadeIncompativelError struct {
	ItemNome string
	De       string
	Para     string
}

func (e *UnidadeIncompativelError) Error() string {
	return fmt.Sprintf("unidade %q não converte para %q (item %s)", e.De, e.Para, e.ItemNome)
}
