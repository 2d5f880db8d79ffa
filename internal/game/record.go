package game

import "github.com/vovakirdan/handball/internal/storage"

// Outcome maps a status to the outcome stored with a result.
func Outcome(s Status) string {
	switch s {
	case StatusWon:
		return storage.OutcomeWon
	case StatusLost:
		return storage.OutcomeLost
	default:
		return storage.OutcomeInterrupted
	}
}

// Entry converts the result into a score record for player.
func (r Result) Entry(player string) storage.ScoreEntry {
	return storage.ScoreEntry{
		GameID:  ID,
		Player:  player,
		Score:   r.Score,
		Losses:  r.Losses,
		Outcome: Outcome(r.Status),
		Ticks:   r.Ticks,
	}
}
