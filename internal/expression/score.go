package expression

import "github.com/twentyfourlab/twentyfour-backend/internal/entity"

const (
	plusMinusPoints = 1
	timesPoints     = 2
	dividePoints    = 3

	// bonus for using the same hard operator at least twice
	repeatBonusThreshold = 2
	repeatBonusPoints    = 1

	fourNumbersBonus = 1
	fiveNumbersBonus = 2
)

// Score computes the point value of a committed expression. Pure function of
// the token sequence; brackets contribute nothing.
func Score(cards []entity.SelectedCard) int {
	score := 0

	for _, card := range cards {
		switch card.Symbol {
		case entity.SymbolPlus, entity.SymbolMinus:
			score += plusMinusPoints
		case entity.SymbolTimes:
			score += timesPoints
		case entity.SymbolDivide:
			score += dividePoints
		}
	}

	if entity.CountSymbols(cards, entity.SymbolTimes) >= repeatBonusThreshold {
		score += repeatBonusPoints
	}

	if entity.CountSymbols(cards, entity.SymbolDivide) >= repeatBonusThreshold {
		score += repeatBonusPoints
	}

	switch entity.CountNumbers(cards) {
	case 4:
		score += fourNumbersBonus
	case 5:
		score += fiveNumbersBonus
	}

	return score
}
