package cli

import (
	"fmt"
	"time"

	"github.com/trollgameskr/cube-game/internal/storage"
)

func newScoreRepository(db *storage.DB) *storage.ScoreRepository {
	return storage.NewScoreRepository(db)
}

// formatDuration renders solve times as 12.3s or 1:02.5.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%04.1f", mins, secs)
}
