package units

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Identidade(t *testing.T) {
	q := decimal.NewFromFloat(3.75)
	for _, u := range All {
		got, err := Convert(q, u, u)
		require.NoError(t, err, "unidade %s", u)
		assert.True(t, got.Equal(q), "unidade %s", u)
	}
}

func TestConvert_FatoresCanonicos(t *testing.T) {
	cases := []struct {
		from, to string
		in, want string
	}{
		{Litro, Mililitro, "1", "1000"},
		{Mililitro, Litro, "1", "0.001"},
		{Quilograma, Grama, "1", "1000"},
		{Grama, Quilograma, "1", "0.001"},
		{Grama, Quilograma, "500", "0.5"},
		{Litro, Mililitro, "2.5", "2500"},
	}
	for _, c := range cases {
		got, err := Convert(decimal.RequireFromString(c.in), c.from, c.to)
		require.NoError(t, err, "%s→%s", c.from, c.to)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"%s %s→%s: esperado %s, obtido %s", c.in, c.from, c.to, c.want, got)
	}
}

func TestConvert_IdaEVolta(t *testing.T) {
	pairs := [][2]string{
		{Litro, Mililitro},
		{Quilograma, Grama},
	}
	q := decimal.NewFromFloat(7.3)
	for _, p := range pairs {
		there, err := Convert(q, p[0], p[1])
		require.NoError(t, err)
		back, err := Convert(there, p[1], p[0])
		require.NoError(t, err)
		assert.True(t, back.Sub(q).Abs().LessThan(decimal.NewFromFloat(1e-9)),
			"%s↔%s: %s ≠ %s", p[0], p[1], back, q)
	}
}

func TestConvert_UnidadesOpacas(t *testing.T) {
	q := decimal.NewFromInt(10)

	_, err := Convert(q, Litro, Unidade)
	var uc *UnconvertibleError
	require.ErrorAs(t, err, &uc)
	assert.Equal(t, Litro, uc.From)
	assert.Equal(t, Unidade, uc.To)

	// Opacas não convertem nem entre si, nem com massa/volume.
	_, err = Convert(q, Caixa, Duzia)
	assert.Error(t, err)
	_, err = Convert(q, Grama, Garrafa)
	assert.Error(t, err)
	_, err = Convert(q, Saco, Mililitro)
	assert.Error(t, err)
}

func TestConvert_SemComposicaoTransitiva(t *testing.T) {
	// Volume e massa são grandezas distintas: nenhum caminho L→g existe.
	_, err := Convert(decimal.NewFromInt(1), Litro, Grama)
	assert.Error(t, err)
	_, err = Convert(decimal.NewFromInt(1), Mililitro, Quilograma)
	assert.Error(t, err)
}

func TestCanConvert(t *testing.T) {
	assert.True(t, CanConvert(Litro, Mililitro))
	assert.True(t, CanConvert(Grama, Grama))
	assert.False(t, CanConvert(Litro, Unidade))
	assert.False(t, CanConvert(Caixa, Pacote))
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("Kg"))
	assert.True(t, IsKnown("mç"))
	assert.False(t, IsKnown("galão"))
}
