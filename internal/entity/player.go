package entity

type Player struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Score             int          `json:"score"`
	HandCard          []NumberCard `json:"handCard"`
	IsMaster          bool         `json:"isMaster"`
	IsReady           bool         `json:"isReady"`
	PlayerOrder       int          `json:"playerOrder,omitempty"`
	IsLastRoundPlayer bool         `json:"isLastRoundPlayer"`
}

// RemoveCard removes one card by id from the hand and reports whether it
// was present.
func (that *Player) RemoveCard(cardID string) bool {
	for i, card := range that.HandCard {
		if card.ID == cardID {
			that.HandCard = append(that.HandCard[:i], that.HandCard[i+1:]...)
			return true
		}
	}

	return false
}
