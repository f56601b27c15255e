package camera

import (
	"fmt"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//AddAdjustedPositions writes PositionAdjusted = Position - movement[frame] on every record that has a Position.
//No other field is touched. movement must cover every frame of the store.
func AddAdjustedPositions(store *tracking.TrackStore, movement Movement) error {
	for category, frames := range store.Categories() {
		if len(movement) < len(frames) {
			return fmt.Errorf("AddAdjustedPositions: %d frames of %s, %d frames of movement: %w", len(frames), category, len(movement), utils.ErrMovementLength)
		}
	}

	store.ForEach(func(_ string, frameNum, _ int, rec *tracking.TrackRecord) {
		if rec.Position == nil {
			return
		}

		m := movement[frameNum]
		adjusted := rec.Position.Sub(utils.Point{X: m.X, Y: m.Y})
		rec.PositionAdjusted = &adjusted
	})

	return nil
}
