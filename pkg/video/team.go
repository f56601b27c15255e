package video

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/chenBenjamin97/football-analyzer/pkg/analytics"
	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//AssignTeams splits the players in a dark and a light team by the brightness of their jerseys. Every frame votes
//and each player gets the team it was put in most often. TeamColor is the mean BGR jersey color of the team.
func AssignTeams(frames []gocv.Mat, store *tracking.TrackStore) {
	votes := analytics.NewTeamVotes()

	colorSum := make(map[int][3]float64)
	colorCount := make(map[int]int)

	grayFrame := gocv.NewMat()
	defer grayFrame.Close()

	for frameNum, players := range store.Players {
		if frameNum >= len(frames) || len(players) == 0 {
			continue
		}
		frame := frames[frameNum]

		gocv.CvtColor(frame, &grayFrame, gocv.ColorBGRToGray)

		brightness := make(map[int]float64)
		bgr := make(map[int]gocv.Scalar)

		for id, rec := range players {
			roiRect, ok := jerseyRect(rec.Bbox, frame.Cols(), frame.Rows())
			if !ok {
				continue
			}

			roiGray := grayFrame.Region(roiRect)
			brightness[id] = roiGray.Mean().Val1
			roiGray.Close()

			roiColor := frame.Region(roiRect)
			bgr[id] = roiColor.Mean()
			roiColor.Close()
		}

		teams := analytics.SplitByBrightness(brightness)
		votes.Add(teams)

		for id, team := range teams {
			c := colorSum[team]
			c[0] += bgr[id].Val1
			c[1] += bgr[id].Val2
			c[2] += bgr[id].Val3
			colorSum[team] = c
			colorCount[team]++
		}
	}

	colors := make(map[int][3]uint8)
	for team, sum := range colorSum {
		n := float64(colorCount[team])
		colors[team] = [3]uint8{uint8(sum[0] / n), uint8(sum[1] / n), uint8(sum[2] / n)}
	}

	votes.Apply(store, colors)
}

//jerseyRect returns the middle third of the box, which mostly holds the shirt, clipped to the frame
func jerseyRect(b utils.BoundingBox, width, height int) (image.Rectangle, bool) {
	boxWidth := b.X2 - b.X1
	boxHeight := b.Y2 - b.Y1

	r := image.Rect(
		int(b.X1+boxWidth/3), int(b.Y1+boxHeight/3),
		int(b.X2-boxWidth/3), int(b.Y2-boxHeight/3),
	).Intersect(image.Rect(0, 0, width, height))

	return r, !r.Empty()
}
