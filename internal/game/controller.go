// Package game is the turn and round controller: it owns the transitions of
// a room between idle and playing, deals and draws cards, commits scores and
// declares the winner.
package game

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/twentyfourlab/twentyfour-backend/internal/apperror"
	"github.com/twentyfourlab/twentyfour-backend/internal/deck"
	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
	"github.com/twentyfourlab/twentyfour-backend/internal/expression"
)

// Start deals a fresh match: new shuffled deck, five cards per player, a
// random turn-order permutation and the first order on turn.
func Start(room *entity.Room) error {
	if !room.IsIdle() {
		return apperror.ErrGameIsPlaying
	}

	room.Deck = deck.ForPlayers(room.Settings.DeckType, len(room.Players))
	room.SelectedCards = expression.Reselect()
	room.IsGameOver = false
	room.CurrentOrder = 1

	orders := rand.Perm(len(room.Players)) //nolint: gosec // not a security concern
	for i, player := range room.Players {
		player.PlayerOrder = orders[i] + 1
		player.Score = 0
		player.IsLastRoundPlayer = false
		player.HandCard = popCards(room, entity.HandCardCount)
	}

	room.Status = entity.StatusPlaying

	return nil
}

// Draw gives the acting player count cards from the deck tail and advances
// the turn. When the acting player already holds the last-round flag the
// match ends instead and the winner is returned.
func Draw(room *entity.Room, playerID string, count int) (*entity.Player, error) {
	player, err := actingPlayer(room, playerID)
	if err != nil {
		return nil, err
	}

	if player.IsLastRoundPlayer {
		return finish(room), nil
	}

	if len(room.Deck) <= count {
		player.HandCard = append(player.HandCard, popCards(room, len(room.Deck))...)

		// the flag goes to whoever empties the deck, once per match
		if !lastRoundClaimed(room) {
			player.IsLastRoundPlayer = true
		}
	} else {
		player.HandCard = append(player.HandCard, popCards(room, count)...)
	}

	advanceTurn(room)

	return nil, nil
}

// Discard removes one named card from the acting player's hand, rebalancing
// after a draw pushed it past the limit. The turn does not change.
func Discard(room *entity.Room, playerID, cardID string) error {
	if !room.IsPlaying() {
		return apperror.ErrGameIsNotStarted
	}

	player := room.PlayerByID(playerID)
	if player == nil {
		return apperror.ErrPlayerNotFound
	}

	if !player.RemoveCard(cardID) {
		return fmt.Errorf("%w: %s", apperror.ErrCardNotInHand, cardID)
	}

	return nil
}

// SortHand orders the player's hand ascending by value.
func SortHand(room *entity.Room, playerID string) error {
	player := room.PlayerByID(playerID)
	if player == nil {
		return apperror.ErrPlayerNotFound
	}

	sort.SliceStable(player.HandCard, func(i, j int) bool {
		return player.HandCard[i].Value < player.HandCard[j].Value
	})

	return nil
}

// CheckPlay evaluates the shared expression and reports whether it makes 24.
func CheckPlay(room *entity.Room, playerID string) (bool, error) {
	if _, err := actingPlayer(room, playerID); err != nil {
		return false, err
	}

	return expression.IsTwentyFour(room.SelectedCards)
}

// UpdateScore commits the score of the shared expression to the acting
// player, clears it and draws back as many cards as the expression consumed,
// so scoring and turn advance are one action. Returns the winner when the
// draw ended the match.
func UpdateScore(room *entity.Room, playerID string) (*entity.Player, error) {
	player, err := actingPlayer(room, playerID)
	if err != nil {
		return nil, err
	}

	used := entity.CountNumbers(room.SelectedCards)
	player.Score += expression.Score(room.SelectedCards)
	room.SelectedCards = expression.Reselect()

	return Draw(room, player.ID, used)
}

// Winner returns the highest-scoring player; equal scores resolve to the
// lowest player order.
func Winner(room *entity.Room) *entity.Player {
	var winner *entity.Player
	for _, player := range room.Players {
		if winner == nil ||
			player.Score > winner.Score ||
			(player.Score == winner.Score && player.PlayerOrder < winner.PlayerOrder) {
			winner = player
		}
	}

	return winner
}

// actingPlayer resolves the player and verifies both the room phase and the
// turn ownership.
func actingPlayer(room *entity.Room, playerID string) (*entity.Player, error) {
	if !room.IsPlaying() {
		return nil, apperror.ErrGameIsNotStarted
	}

	player := room.PlayerByID(playerID)
	if player == nil {
		return nil, apperror.ErrPlayerNotFound
	}

	if player.PlayerOrder != room.CurrentOrder {
		return nil, apperror.ErrNotYourTurn
	}

	return player, nil
}

func finish(room *entity.Room) *entity.Player {
	room.IsGameOver = true
	room.Status = entity.StatusIdle

	for _, player := range room.Players {
		if !player.IsMaster {
			player.IsReady = false
		}
	}

	return Winner(room)
}

func advanceTurn(room *entity.Room) {
	room.CurrentOrder++
	if room.CurrentOrder > len(room.Players) {
		room.CurrentOrder = 1
	}
}

func lastRoundClaimed(room *entity.Room) bool {
	for _, player := range room.Players {
		if player.IsLastRoundPlayer {
			return true
		}
	}

	return false
}

// popCards removes n cards from the deck tail.
func popCards(room *entity.Room, n int) []entity.NumberCard {
	if n > len(room.Deck) {
		n = len(room.Deck)
	}

	drawn := make([]entity.NumberCard, n)
	copy(drawn, room.Deck[len(room.Deck)-n:])
	room.Deck = room.Deck[:len(room.Deck)-n]

	return drawn
}
