package entity

// Symbol - one operator token of the expression being built.
type Symbol string

const (
	SymbolPlus         Symbol = "+"
	SymbolMinus        Symbol = "-"
	SymbolTimes        Symbol = "*"
	SymbolDivide       Symbol = "/"
	SymbolLeftBracket  Symbol = "("
	SymbolRightBracket Symbol = ")"
)

// IsOperator reports whether the symbol is one of + - * /.
func (that Symbol) IsOperator() bool {
	switch that {
	case SymbolPlus, SymbolMinus, SymbolTimes, SymbolDivide:
		return true
	default:
		return false
	}
}

// NumberCard - a single drawable card bearing a value from 1 to 10.
type NumberCard struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

// SelectedCard - one token of the in-progress expression: exactly one of
// Number or Symbol is set.
type SelectedCard struct {
	Number *NumberCard `json:"number,omitempty"`
	Symbol Symbol      `json:"symbol,omitempty"`
}

// CountNumbers returns how many number tokens the expression holds.
func CountNumbers(cards []SelectedCard) int {
	count := 0
	for _, card := range cards {
		if card.Number != nil {
			count++
		}
	}

	return count
}

// CountSymbols returns how many tokens equal the given symbol.
func CountSymbols(cards []SelectedCard, symbol Symbol) int {
	count := 0
	for _, card := range cards {
		if card.Symbol == symbol {
			count++
		}
	}

	return count
}
