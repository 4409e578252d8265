package expression

import (
	"fmt"
	"math"

	"github.com/twentyfourlab/twentyfour-backend/internal/apperror"
	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
)

const (
	target  = 24
	epsilon = 1e-9
)

// Evaluate treats the token sequence as an infix arithmetic expression and
// computes its value with standard precedence and brackets. Malformed input
// (unbalanced brackets, dangling operator, empty sequence) yields
// apperror.ErrInvalidExpression, never a panic.
func Evaluate(cards []entity.SelectedCard) (float64, error) {
	parser := &parser{cards: cards}

	value, err := parser.parseExpression()
	if err != nil {
		return 0, err
	}

	if parser.pos != len(parser.cards) {
		return 0, fmt.Errorf("%w: unexpected token at position %d", apperror.ErrInvalidExpression, parser.pos)
	}

	return value, nil
}

// IsTwentyFour reports whether the expression evaluates to exactly 24.
// Division makes intermediate values real, so equality is within epsilon.
func IsTwentyFour(cards []entity.SelectedCard) (bool, error) {
	value, err := Evaluate(cards)
	if err != nil {
		return false, err
	}

	return math.Abs(value-target) < epsilon, nil
}

type parser struct {
	cards []entity.SelectedCard
	pos   int
}

// expression = term { (+|-) term }
func (that *parser) parseExpression() (float64, error) {
	value, err := that.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		symbol, ok := that.peekSymbol()
		if !ok || (symbol != entity.SymbolPlus && symbol != entity.SymbolMinus) {
			return value, nil
		}
		that.pos++

		right, err := that.parseTerm()
		if err != nil {
			return 0, err
		}

		if symbol == entity.SymbolPlus {
			value += right
		} else {
			value -= right
		}
	}
}

// term = factor { (*|/) factor }
func (that *parser) parseTerm() (float64, error) {
	value, err := that.parseFactor()
	if err != nil {
		return 0, err
	}

	for {
		symbol, ok := that.peekSymbol()
		if !ok || (symbol != entity.SymbolTimes && symbol != entity.SymbolDivide) {
			return value, nil
		}
		that.pos++

		right, err := that.parseFactor()
		if err != nil {
			return 0, err
		}

		if symbol == entity.SymbolTimes {
			value *= right
			continue
		}

		if right == 0 {
			return 0, fmt.Errorf("%w: division by zero", apperror.ErrInvalidExpression)
		}
		value /= right
	}
}

// factor = number | "(" expression ")"
func (that *parser) parseFactor() (float64, error) {
	if that.pos >= len(that.cards) {
		return 0, fmt.Errorf("%w: expression ends with an operator", apperror.ErrInvalidExpression)
	}

	card := that.cards[that.pos]

	if card.Number != nil {
		that.pos++
		return float64(card.Number.Value), nil
	}

	if card.Symbol != entity.SymbolLeftBracket {
		return 0, fmt.Errorf("%w: expected a number or left bracket", apperror.ErrInvalidExpression)
	}
	that.pos++

	value, err := that.parseExpression()
	if err != nil {
		return 0, err
	}

	if symbol, ok := that.peekSymbol(); !ok || symbol != entity.SymbolRightBracket {
		return 0, fmt.Errorf("%w: missing right bracket", apperror.ErrInvalidExpression)
	}
	that.pos++

	return value, nil
}

func (that *parser) peekSymbol() (entity.Symbol, bool) {
	if that.pos >= len(that.cards) || that.cards[that.pos].Symbol == "" {
		return "", false
	}

	return that.cards[that.pos].Symbol, true
}
