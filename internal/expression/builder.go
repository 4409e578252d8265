// Package expression holds the shared in-progress expression of a room:
// the selection state machine, the infix evaluator and the scorer.
package expression

import (
	"errors"

	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
)

var (
	ErrFirstToken       = errors.New("first token must be a number or left bracket")
	ErrAdjacentNumbers  = errors.New("a number card cannot follow another number card")
	ErrDoubledOperator  = errors.New("operator cannot be repeated")
	ErrSignAfterBracket = errors.New("plus or minus cannot open a bracket group")
	ErrTooManyNumbers   = errors.New("too many number cards in the expression")
	ErrNothingToSelect  = errors.New("either a number or a symbol is required")
)

// Select validates one incoming token against the current tail and returns
// the new token sequence. The input slice is never mutated: on rejection the
// caller keeps its sequence and gets the reason.
func Select(cards []entity.SelectedCard, number *entity.NumberCard, symbol entity.Symbol) ([]entity.SelectedCard, error) {
	switch {
	case number != nil:
		return selectNumber(cards, number)
	case symbol != "":
		return selectSymbol(cards, symbol)
	default:
		return nil, ErrNothingToSelect
	}
}

// Reselect clears the whole sequence.
func Reselect() []entity.SelectedCard {
	return []entity.SelectedCard{}
}

// Back pops the last token, no-op on an empty sequence.
func Back(cards []entity.SelectedCard) []entity.SelectedCard {
	if len(cards) == 0 {
		return cards
	}

	return append([]entity.SelectedCard{}, cards[:len(cards)-1]...)
}

func selectNumber(cards []entity.SelectedCard, number *entity.NumberCard) ([]entity.SelectedCard, error) {
	last := lastCard(cards)

	// a different number on the tail rejects, even if the incoming card
	// was selected earlier
	if last != nil && last.Number != nil && last.Number.ID != number.ID {
		return nil, ErrAdjacentNumbers
	}

	// picking an already selected card toggles it off again
	for i, card := range cards {
		if card.Number != nil && card.Number.ID == number.ID {
			next := append([]entity.SelectedCard{}, cards[:i]...)
			return append(next, cards[i+1:]...), nil
		}
	}

	if entity.CountNumbers(cards) >= entity.MaxFormulaNumberCount {
		return nil, ErrTooManyNumbers
	}

	next := append([]entity.SelectedCard{}, cards...)

	// adjacent-parenthesis multiplication: (2+2)3 means (2+2)*3
	if last != nil && last.Symbol == entity.SymbolRightBracket {
		next = append(next, entity.SelectedCard{Symbol: entity.SymbolTimes})
	}

	return append(next, entity.SelectedCard{Number: number}), nil
}

func selectSymbol(cards []entity.SelectedCard, symbol entity.Symbol) ([]entity.SelectedCard, error) {
	last := lastCard(cards)

	if last == nil {
		if symbol != entity.SymbolLeftBracket {
			return nil, ErrFirstToken
		}

		return []entity.SelectedCard{{Symbol: symbol}}, nil
	}

	if symbol.IsOperator() && last.Symbol == symbol {
		return nil, ErrDoubledOperator
	}

	if last.Symbol == entity.SymbolLeftBracket && (symbol == entity.SymbolPlus || symbol == entity.SymbolMinus) {
		return nil, ErrSignAfterBracket
	}

	next := append([]entity.SelectedCard{}, cards...)

	// 3(2+2) means 3*(2+2)
	if symbol == entity.SymbolLeftBracket && last.Number != nil {
		next = append(next, entity.SelectedCard{Symbol: entity.SymbolTimes})
	}

	return append(next, entity.SelectedCard{Symbol: symbol}), nil
}

func lastCard(cards []entity.SelectedCard) *entity.SelectedCard {
	if len(cards) == 0 {
		return nil
	}

	return &cards[len(cards)-1]
}
