// Package deck builds and shuffles the number card pool for a match.
package deck

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
)

const (
	minCardValue = 1
	maxCardValue = 10
)

// copies of each value per player count, standard mode
var copiesByPlayers = map[int]int{
	1: 2,
	2: 6,
	3: 9,
	4: 12,
}

// Standard returns copies of each value 1..10, 10*copies cards total.
func Standard(copies int) []entity.NumberCard {
	cards := make([]entity.NumberCard, 0, copies*maxCardValue)
	for value := minCardValue; value <= maxCardValue; value++ {
		for i := 0; i < copies; i++ {
			cards = append(cards, newCard(value))
		}
	}

	return cards
}

// Random returns total cards with independently uniform values in [1, maxValue].
func Random(total, maxValue int) []entity.NumberCard {
	cards := make([]entity.NumberCard, 0, total)
	for i := 0; i < total; i++ {
		cards = append(cards, newCard(rand.Intn(maxValue)+1)) //nolint: gosec // not a security concern
	}

	return cards
}

// Shuffle returns a new uniformly permuted copy, Fisher-Yates.
func Shuffle(cards []entity.NumberCard) []entity.NumberCard {
	shuffled := make([]entity.NumberCard, len(cards))
	copy(shuffled, cards)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1) //nolint: gosec // not a security concern
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// ForPlayers builds the shuffled deck for a match: solo 20 cards, 2p 60,
// 3p 90, 4p 120; random mode keeps the same totals with values 1..10.
func ForPlayers(deckType string, numPlayers int) []entity.NumberCard {
	copies, ok := copiesByPlayers[numPlayers]
	if !ok {
		copies = copiesByPlayers[4]
	}

	if deckType == entity.DeckTypeRandom {
		return Shuffle(Random(copies*maxCardValue, maxCardValue))
	}

	return Shuffle(Standard(copies))
}

func newCard(value int) entity.NumberCard {
	return entity.NumberCard{
		ID:    uuid.NewString(),
		Value: value,
	}
}
