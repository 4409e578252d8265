package registry

import "time"

// TickFunc receives one countdown tick: the room, the seconds left and the
// id of the player expected to draw next.
type TickFunc func(roomID string, remaining int, nextPlayerID string)

// countdown is the per-room repeating turn timer. It is owned by the
// registry entry and must be stopped exactly once.
type countdown struct {
	done chan struct{}
}

// OnTick registers the broadcast callback the gateway fans ticks out with.
func (that *Registry) OnTick(fn TickFunc) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.tick = fn
}

// RestartCountdown cancels the room's running countdown, if any, and starts
// a fresh one when the room settings ask for a turn timer. Called on game
// start and after every successful draw.
func (that *Registry) RestartCountdown(roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stopCountdown(roomID)

	room, ok := that.rooms[roomID]
	if !ok || room.Settings.RemainSeconds == nil {
		return
	}

	task := &countdown{done: make(chan struct{})}
	that.countdowns[roomID] = task

	go that.runCountdown(roomID, *room.Settings.RemainSeconds, task)
}

// StopCountdown tears the room's countdown down, if one is running.
func (that *Registry) StopCountdown(roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.stopCountdown(roomID)
}

// stopCountdown requires the registry lock.
func (that *Registry) stopCountdown(roomID string) {
	task, ok := that.countdowns[roomID]
	if !ok {
		return
	}

	close(task.done)
	delete(that.countdowns, roomID)
}

func (that *Registry) runCountdown(roomID string, remaining int, task *countdown) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	defer that.releaseCountdown(roomID, task)

	for {
		select {
		case <-task.done:
			return
		case <-ticker.C:
			remaining--

			nextPlayerID, tick, ok := that.countdownTick(roomID)
			if !ok {
				return
			}

			tick(roomID, remaining, nextPlayerID)

			if remaining <= 0 {
				return
			}
		}
	}
}

// releaseCountdown drops the expired task's own map entry, unless a restart
// already replaced it with a newer one.
func (that *Registry) releaseCountdown(roomID string, task *countdown) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.countdowns[roomID] == task {
		delete(that.countdowns, roomID)
	}
}

// countdownTick snapshots what one tick needs under the read lock.
func (that *Registry) countdownTick(roomID string) (string, TickFunc, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return "", nil, false
	}

	var nextPlayerID string
	if current := room.CurrentPlayer(); current != nil {
		nextPlayerID = current.ID
	}

	return nextPlayerID, that.tick, true
}
