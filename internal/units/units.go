// Package units converte quantidades entre unidades de medida do estoque.
// Apenas pares registrados dentro da mesma grandeza física são conversíveis
// (volume: L↔mL, massa: Kg↔g). Unidades de contagem (und, cx, dz, …) são
// opacas: convertem apenas para si mesmas.
//
// Não há composição transitiva de fatores: a conversão é resolvida pelo par
// direto ou pelo inverso registrado, nada além disso.
package units

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Unidades reconhecidas pelo estoque.
const (
	Litro      = "L"
	Mililitro  = "mL"
	Quilograma = "Kg"
	Grama      = "g"
	Unidade    = "und"
	Caixa      = "cx"
	Pacote     = "pct"
	Duzia      = "dz"
	Fardo      = "fd"
	Garrafa    = "grf"
	Lata       = "lt"
	Saco       = "sc"
	Bandeja    = "bdj"
	Maco       = "mç"
)

// All lista todas as unidades aceitas em cadastros de itens e ingredientes.
var All = []string{
	Litro, Mililitro, Quilograma, Grama,
	Unidade, Caixa, Pacote, Duzia, Fardo, Garrafa, Lata, Saco, Bandeja, Maco,
}

// conversions registra os fatores diretos entre pares conversíveis.
// O inverso é derivado por divisão, nunca registrado duas vezes.
var conversions = map[string]map[string]decimal.Decimal{
	Litro:      {Mililitro: decimal.NewFromInt(1000)},
	Mililitro:  {Litro: decimal.NewFromFloat(0.001)},
	Quilograma: {Grama: decimal.NewFromInt(1000)},
	Grama:      {Quilograma: decimal.NewFromFloat(0.001)},
}

// UnconvertibleError indica que não existe fator registrado entre as unidades.
// Chamadores devem tratar como erro definitivo, nunca assumir equivalência.
type UnconvertibleError struct {
	From string
	To   string
}

func (e *UnconvertibleError) Error() string {
	return fmt.Sprintf("não é possível converter de %s para %s", e.From, e.To)
}

// Convert converte uma quantidade de fromUnit para toUnit.
// Identidade é exata; par direto multiplica pelo fator; par inverso divide.
func Convert(quantity decimal.Decimal, fromUnit, toUnit string) (decimal.Decimal, error) {
	if fromUnit == toUnit {
		return quantity, nil
	}

	if factors, ok := conversions[fromUnit]; ok {
		if f, ok := factors[toUnit]; ok {
			return quantity.Mul(f), nil
		}
	}

	if factors, ok := conversions[toUnit]; ok {
		if f, ok := factors[fromUnit]; ok {
			return quantity.Div(f), nil
		}
	}

	return decimal.Zero, &UnconvertibleError{From: fromUnit, To: toUnit}
}

// CanConvert informa se existe conversão registrada entre as duas unidades.
func CanConvert(fromUnit, toUnit string) bool {
	_, err := Convert(decimal.NewFromInt(1), fromUnit, toUnit)
	return err == nil
}

// IsKnown informa se a unidade consta da lista aceita pelo estoque.
func IsKnown(unit string) bool {
	for _, u := range All {
		if u == unit {
			return true
		}
	}
	return false
}
