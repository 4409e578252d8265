package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
)

func TestCountdown(t *testing.T) {
	t.Run("Ticks carry the remaining seconds and the expected drawer", func(t *testing.T) {
		// Given: a room with a 2-second turn timer and a playing match
		reg := newTestRegistry(t)
		_, err := reg.Join(joinParams("room-1", "p1"))
		require.NoError(t, err)

		seconds := 2
		_, err = reg.EditSettings("room-1", entity.RoomSettings{
			DeckType:      entity.DeckTypeStandard,
			RemainSeconds: &seconds,
		})
		require.NoError(t, err)

		_, err = reg.WithRoom("room-1", func(room *entity.Room) error {
			room.Status = entity.StatusPlaying
			room.CurrentOrder = 1
			room.Players[0].PlayerOrder = 1
			return nil
		})
		require.NoError(t, err)

		type tick struct {
			remaining    int
			nextPlayerID string
		}
		ticks := make(chan tick, 4)
		reg.OnTick(func(_ string, remaining int, nextPlayerID string) {
			ticks <- tick{remaining: remaining, nextPlayerID: nextPlayerID}
		})

		// When: the countdown starts
		reg.RestartCountdown("room-1")
		defer reg.StopCountdown("room-1")

		// Then: the first tick names player one with one second left
		select {
		case got := <-ticks:
			assert.Equal(t, 1, got.remaining)
			assert.Equal(t, "p1", got.nextPlayerID)
		case <-time.After(3 * time.Second):
			t.Fatal("no countdown tick received")
		}
	})

	t.Run("A room without the setting gets no countdown", func(t *testing.T) {
		reg := newTestRegistry(t)
		_, err := reg.Join(joinParams("room-1", "p1"))
		require.NoError(t, err)

		reg.RestartCountdown("room-1")

		reg.mu.RLock()
		_, running := reg.countdowns["room-1"]
		reg.mu.RUnlock()
		assert.False(t, running)
	})

	t.Run("A naturally expired countdown removes its own entry", func(t *testing.T) {
		// Given: a room with a 1-second turn timer
		reg := newTestRegistry(t)
		_, err := reg.Join(joinParams("room-1", "p1"))
		require.NoError(t, err)

		seconds := 1
		_, err = reg.EditSettings("room-1", entity.RoomSettings{
			DeckType:      entity.DeckTypeStandard,
			RemainSeconds: &seconds,
		})
		require.NoError(t, err)

		// When: the countdown runs out on its own
		reg.RestartCountdown("room-1")

		// Then: the entry disappears without anyone calling stop
		require.Eventually(t, func() bool {
			reg.mu.RLock()
			defer reg.mu.RUnlock()
			_, running := reg.countdowns["room-1"]
			return !running
		}, 3*time.Second, 50*time.Millisecond)
	})

	t.Run("Stop is safe to call twice", func(t *testing.T) {
		reg := newTestRegistry(t)
		_, err := reg.Join(joinParams("room-1", "p1"))
		require.NoError(t, err)

		seconds := 30
		_, err = reg.EditSettings("room-1", entity.RoomSettings{
			DeckType:      entity.DeckTypeStandard,
			RemainSeconds: &seconds,
		})
		require.NoError(t, err)

		reg.RestartCountdown("room-1")
		reg.StopCountdown("room-1")
		reg.StopCountdown("room-1")
	})
}
