package entity

const (
	StatusIdle    = "idle"
	StatusPlaying = "playing"

	DeckTypeStandard = "standard"
	DeckTypeRandom   = "random"
)

const (
	// HandCardCount - cards dealt to each player at game start.
	HandCardCount = 5
	// MaxCardCount - hand size the player rebalances back to after a draw.
	MaxCardCount = 5
	// MaxFormulaNumberCount - most number cards allowed in one expression.
	MaxFormulaNumberCount = 5
)

type RoomSettings struct {
	DeckType      string `json:"deckType"`
	RemainSeconds *int   `json:"remainSeconds"`
}

type Room struct {
	RoomID        string         `json:"roomId"`
	RoomName      string         `json:"roomName,omitempty"`
	Password      string         `json:"password,omitempty"`
	MaxPlayers    int            `json:"maxPlayers"`
	Status        string         `json:"status"`
	CurrentOrder  int            `json:"currentOrder"`
	Deck          []NumberCard   `json:"deck"`
	Players       []*Player      `json:"players"`
	SelectedCards []SelectedCard `json:"selectedCards"`
	Settings      RoomSettings   `json:"settings"`
	IsGameOver    bool           `json:"isGameOver"`
}

func NewRoom(roomID string, maxPlayers int) *Room {
	return &Room{
		RoomID:        roomID,
		MaxPlayers:    maxPlayers,
		Status:        StatusIdle,
		Deck:          []NumberCard{},
		Players:       []*Player{},
		SelectedCards: []SelectedCard{},
		Settings:      RoomSettings{DeckType: DeckTypeStandard},
	}
}

func (that *Room) IsIdle() bool {
	return that.Status == StatusIdle
}

func (that *Room) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= that.MaxPlayers
}

// IsSolo - single-seat rooms never show up in search results.
func (that *Room) IsSolo() bool {
	return that.MaxPlayers == 1
}

func (that *Room) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

// PlayerByOrder returns the player holding the given turn order.
func (that *Room) PlayerByOrder(order int) *Player {
	for _, player := range that.Players {
		if player.PlayerOrder == order {
			return player
		}
	}

	return nil
}

func (that *Room) Master() *Player {
	for _, player := range that.Players {
		if player.IsMaster {
			return player
		}
	}

	return nil
}

// CurrentPlayer returns the player whose turn it is, nil outside a match.
func (that *Room) CurrentPlayer() *Player {
	return that.PlayerByOrder(that.CurrentOrder)
}

// Clone returns a deep copy sharing no mutable state with the receiver,
// safe to read or marshal outside the registry lock.
func (that *Room) Clone() *Room {
	clone := *that

	clone.Deck = append([]NumberCard{}, that.Deck...)

	clone.SelectedCards = make([]SelectedCard, len(that.SelectedCards))
	for i, card := range that.SelectedCards {
		clone.SelectedCards[i] = card
		if card.Number != nil {
			number := *card.Number
			clone.SelectedCards[i].Number = &number
		}
	}

	if that.Settings.RemainSeconds != nil {
		seconds := *that.Settings.RemainSeconds
		clone.Settings.RemainSeconds = &seconds
	}

	clone.Players = make([]*Player, 0, len(that.Players))
	for _, player := range that.Players {
		seat := *player
		seat.HandCard = append([]NumberCard{}, player.HandCard...)
		clone.Players = append(clone.Players, &seat)
	}

	return &clone
}
