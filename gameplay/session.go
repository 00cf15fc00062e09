package gameplay

import (
	"fmt"
	"math"
	"strconv"

	"github.com/milk9111/platformer/common"
)

// Session is the bookkeeping of the level being played.
type Session struct {
	Level      int
	Score      int
	TotalCoins int
	Deaths     int
	// Elapsed is seconds spent on the current attempt of the level.
	Elapsed float64
}

// restart zeroes the per-attempt counters. Deaths survive.
func (s *Session) restart() {
	s.Score = 0
	s.Elapsed = 0
}

// Totals accumulates across levels and is never reset.
type Totals struct {
	// LevelTimes holds the completion time of level i+1.
	LevelTimes []float64
	Deaths     int
	GrandTotal float64
}

func newTotals() *Totals {
	return &Totals{LevelTimes: make([]float64, common.FinalLevel)}
}

func (t *Totals) record(level int, elapsed float64) {
	if level < 1 || level > len(t.LevelTimes) {
		return
	}
	t.LevelTimes[level-1] = elapsed
}

// Sum adds up the recorded level times.
func (t Totals) Sum() float64 {
	total := 0.0
	for _, v := range t.LevelTimes {
		total += v
	}
	return total
}

// Clone returns a copy that shares no memory with t.
func (t Totals) Clone() Totals {
	out := t
	out.LevelTimes = append([]float64(nil), t.LevelTimes...)
	return out
}

// FormatElapsed renders seconds as MM:SS:HH, HH being hundredths.
func FormatElapsed(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	whole := int(seconds)
	minutes := whole / 60
	secs := whole % 60
	hundredths := int((seconds-float64(whole))*100 + 1e-9)
	if hundredths > 99 {
		hundredths = 99
	}
	return fmt.Sprintf("%02d:%02d:%02d", minutes, secs, hundredths)
}

// FormatTotal rounds to two decimals and drops trailing zeros, the way the
// completion screen shows the grand total.
func FormatTotal(seconds float64) string {
	return strconv.FormatFloat(math.Round(seconds*100)/100, 'f', -1, 64)
}

// CompletionMessage is the sentence shown on the completion screen.
func CompletionMessage(t Totals) string {
	return fmt.Sprintf("You finished the game with a time of %s and a death count of %d", FormatTotal(t.GrandTotal), t.Deaths)
}
