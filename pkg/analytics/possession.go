package analytics

import (
	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//Possession is the ball control summary of a match
type Possession struct {
	//Control holds, per frame, the team in control of the ball (utils.NoTeamID before anybody touched it)
	Control []int `json:"control"`
	//Percentages maps team ID -> share of the controlled frames, in percent
	Percentages map[int]float64 `json:"percentages"`
}

//AssignPossession sets HasBall on the player owning the ball in every frame and computes team control. A frame
//where nobody has the ball keeps the previous frame's team. Teams must already be assigned.
func AssignPossession(store *tracking.TrackStore, assigner *BallAssigner) Possession {
	res := Possession{
		Control:     make([]int, store.FrameCount()),
		Percentages: make(map[int]float64),
	}

	current := utils.NoTeamID
	for frameNum, players := range store.Players {
		for _, rec := range players {
			rec.HasBall = false
		}

		if ball, ok := store.Ball[frameNum][utils.BallTrackID]; ok {
			if id := assigner.AssignBall(players, ball.Bbox); id != utils.NoPlayerID {
				players[id].HasBall = true
				current = players[id].Team
			}
		}

		res.Control[frameNum] = current
	}

	counts := make(map[int]int)
	total := 0
	for _, team := range res.Control {
		if team == utils.NoTeamID {
			continue
		}
		counts[team]++
		total++
	}

	for team, count := range counts {
		res.Percentages[team] = float64(count) / float64(total) * 100
	}

	return res
}
