package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
)

func valueHistogram(cards []entity.NumberCard) map[int]int {
	histogram := make(map[int]int)
	for _, card := range cards {
		histogram[card.Value]++
	}

	return histogram
}

func TestStandard(t *testing.T) {
	t.Run("Builds n copies of each value from 1 to 10", func(t *testing.T) {
		cards := Standard(6)

		require.Len(t, cards, 60)
		for value, count := range valueHistogram(cards) {
			assert.GreaterOrEqual(t, value, 1)
			assert.LessOrEqual(t, value, 10)
			assert.Equal(t, 6, count, "value %d", value)
		}
	})

	t.Run("Every card gets a unique id", func(t *testing.T) {
		cards := Standard(12)

		ids := make(map[string]struct{}, len(cards))
		for _, card := range cards {
			ids[card.ID] = struct{}{}
		}

		assert.Len(t, ids, len(cards))
	})
}

func TestRandom(t *testing.T) {
	t.Run("Values stay within bounds", func(t *testing.T) {
		cards := Random(90, 10)

		require.Len(t, cards, 90)
		for _, card := range cards {
			assert.GreaterOrEqual(t, card.Value, 1)
			assert.LessOrEqual(t, card.Value, 10)
		}
	})
}

func TestShuffle(t *testing.T) {
	t.Run("Shuffle is a bijection over the multiset", func(t *testing.T) {
		// Given: a standard deck
		cards := Standard(9)

		// When: shuffling
		shuffled := Shuffle(cards)

		// Then: length and value histogram are invariant
		require.Len(t, shuffled, len(cards))
		assert.Equal(t, valueHistogram(cards), valueHistogram(shuffled))
	})

	t.Run("Shuffle does not mutate its input", func(t *testing.T) {
		cards := Standard(2)
		snapshot := make([]entity.NumberCard, len(cards))
		copy(snapshot, cards)

		Shuffle(cards)

		assert.Equal(t, snapshot, cards)
	})
}

func TestForPlayers(t *testing.T) {
	tests := []struct {
		players int
		size    int
	}{
		{players: 1, size: 20},
		{players: 2, size: 60},
		{players: 3, size: 90},
		{players: 4, size: 120},
	}

	for _, tt := range tests {
		t.Run("standard deck size by player count", func(t *testing.T) {
			cards := ForPlayers(entity.DeckTypeStandard, tt.players)
			assert.Len(t, cards, tt.size)
		})

		t.Run("random deck keeps the same totals", func(t *testing.T) {
			cards := ForPlayers(entity.DeckTypeRandom, tt.players)
			assert.Len(t, cards, tt.size)
		})
	}
}
