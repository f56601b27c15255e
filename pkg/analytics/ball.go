// Package analytics derives match statistics from the tracked, transformed positions: who has the ball, which
// team controls it, how fast and how far everybody runs.
package analytics

import (
	"math"
	"sort"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//DefaultMaxPlayerBallDistance is the farthest, in pixels, a player's foot may be from the ball to own it
const DefaultMaxPlayerBallDistance = 70.0

//BallAssigner finds the player in possession of the ball
type BallAssigner struct {
	maxDistance float64
}

//NewBallAssigner returns a BallAssigner. A non positive maxDistance means DefaultMaxPlayerBallDistance.
func NewBallAssigner(maxDistance float64) *BallAssigner {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxPlayerBallDistance
	}

	return &BallAssigner{maxDistance: maxDistance}
}

//AssignBall returns the ID of the player closest to the ball, measured from the ball center to the nearer bottom
//corner of the player's box, or utils.NoPlayerID when no player is close enough
func (a *BallAssigner) AssignBall(players tracking.FrameTracks, ballBbox utils.BoundingBox) int {
	ball := utils.CenterOfBbox(ballBbox)

	//iterate in ID order so ties always resolve the same way
	ids := make([]int, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	minDistance := math.Inf(1)
	assigned := utils.NoPlayerID

	for _, id := range ids {
		bbox := players[id].Bbox

		left := utils.MeasureDistance(utils.Point{X: bbox.X1, Y: bbox.Y2}, ball)
		right := utils.MeasureDistance(utils.Point{X: bbox.X2, Y: bbox.Y2}, ball)
		distance := math.Min(left, right)

		if distance < a.maxDistance && distance < minDistance {
			minDistance = distance
			assigned = id
		}
	}

	return assigned
}
