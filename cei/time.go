package cei

import (
	"strconv"
	"time"
)

// calcBudget returns how long to spend on one move, given an optional
// per-move limit and the time left on the agent's clock. Zero means
// no limit.
func calcBudget(move, remaining time.Duration) time.Duration {
	if remaining <= 0 {
		return move
	}
	share := remaining / 10
	if move == 0 || share < move {
		return share
	}
	return move
}

func formatTime(d time.Duration) string {
	ms := d / time.Millisecond
	if ms < 0 {
		ms = 0
	}
	return strconv.FormatUint(uint64(ms), 10)
}
