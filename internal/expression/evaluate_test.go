package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twentyfourlab/twentyfour-backend/internal/apperror"
	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		cards []entity.SelectedCard
		want  float64
	}{
		{
			name:  "single number",
			cards: tokens(num("a", 9)),
			want:  9,
		},
		{
			name:  "times binds tighter than plus",
			cards: tokens(num("a", 2), sym(entity.SymbolPlus), num("b", 3), sym(entity.SymbolTimes), num("c", 4)),
			want:  14,
		},
		{
			name: "brackets override precedence",
			cards: tokens(
				sym(entity.SymbolLeftBracket), num("a", 2), sym(entity.SymbolPlus), num("b", 3),
				sym(entity.SymbolRightBracket), sym(entity.SymbolTimes), num("c", 4),
			),
			want: 20,
		},
		{
			name:  "division is real valued",
			cards: tokens(num("a", 9), sym(entity.SymbolDivide), num("b", 2)),
			want:  4.5,
		},
		{
			name: "nested brackets",
			cards: tokens(
				sym(entity.SymbolLeftBracket), sym(entity.SymbolLeftBracket), num("a", 1),
				sym(entity.SymbolPlus), num("b", 2), sym(entity.SymbolRightBracket),
				sym(entity.SymbolTimes), num("c", 8), sym(entity.SymbolRightBracket),
			),
			want: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.cards)

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluate_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		cards []entity.SelectedCard
	}{
		{name: "empty sequence", cards: nil},
		{name: "dangling operator", cards: tokens(num("a", 3), sym(entity.SymbolPlus))},
		{name: "unbalanced left bracket", cards: tokens(sym(entity.SymbolLeftBracket), num("a", 3))},
		{name: "unbalanced right bracket", cards: tokens(num("a", 3), sym(entity.SymbolRightBracket))},
		{name: "operator first", cards: tokens(sym(entity.SymbolTimes), num("a", 3))},
		{name: "division by zero", cards: tokens(
			num("a", 3), sym(entity.SymbolDivide),
			sym(entity.SymbolLeftBracket), num("b", 2), sym(entity.SymbolMinus), num("c", 2),
			sym(entity.SymbolRightBracket),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.cards)

			assert.ErrorIs(t, err, apperror.ErrInvalidExpression)
		})
	}
}

func TestIsTwentyFour(t *testing.T) {
	t.Run("8 times 3 makes 24", func(t *testing.T) {
		cards := tokens(num("a", 8), sym(entity.SymbolTimes), num("b", 3))

		correct, err := IsTwentyFour(cards)

		require.NoError(t, err)
		assert.True(t, correct)
	})

	t.Run("fractional path to 24 is accepted", func(t *testing.T) {
		// 8 / (3 - 8/3) = 24
		cards := tokens(
			num("a", 8), sym(entity.SymbolDivide),
			sym(entity.SymbolLeftBracket), num("b", 3), sym(entity.SymbolMinus),
			num("c", 8), sym(entity.SymbolDivide), num("d", 3),
			sym(entity.SymbolRightBracket),
		)

		correct, err := IsTwentyFour(cards)

		require.NoError(t, err)
		assert.True(t, correct)
	})

	t.Run("23 is not 24", func(t *testing.T) {
		cards := tokens(num("a", 23))

		correct, err := IsTwentyFour(cards)

		require.NoError(t, err)
		assert.False(t, correct)
	})
}
