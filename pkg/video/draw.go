package video

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/chenBenjamin97/football-analyzer/pkg/camera"
	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

var (
	whiteRGB     = color.RGBA{255, 255, 255, 0}
	blackRGB     = color.RGBA{0, 0, 0, 0}
	refereeColor = color.RGBA{255, 255, 0, 0}
	ballColor    = color.RGBA{0, 255, 0, 0}
	hasBallColor = color.RGBA{255, 0, 0, 0}
)

//teamColor converts a BGR team color to the RGBA gocv expects, white when the team is unknown
func teamColor(rec *tracking.TrackRecord) color.RGBA {
	if rec.Team == utils.NoTeamID {
		return whiteRGB
	}

	return color.RGBA{R: rec.TeamColor[2], G: rec.TeamColor[1], B: rec.TeamColor[0]}
}

//drawEllipse draws a half ellipse under the person's feet and, when trackID > 0, a tag with its ID
func drawEllipse(frame *gocv.Mat, bbox utils.BoundingBox, plotColor color.RGBA, trackID int) {
	foot := utils.FootPosition(bbox)
	center := image.Pt(int(foot.X), int(foot.Y))
	width := int(utils.BboxWidth(bbox))

	gocv.Ellipse(frame, center, image.Pt(width, int(0.35*float64(width))), 0, -45, 235, plotColor, 2)

	if trackID <= 0 {
		return
	}

	const rectWidth, rectHeight = 40, 20
	tagRect := image.Rect(center.X-rectWidth/2, center.Y+5, center.X+rectWidth/2, center.Y+5+rectHeight)
	gocv.Rectangle(frame, tagRect, plotColor, -1) //thickness -1 == filled rectangle

	textX := tagRect.Min.X + 12
	if trackID > 99 {
		textX -= 10
	}
	gocv.PutText(frame, fmt.Sprintf("%d", trackID), image.Pt(textX, tagRect.Min.Y+15), gocv.FontHersheySimplex, 0.6, blackRGB, 2)
}

//drawTriangle draws a filled triangle pointing down at the top of the box
func drawTriangle(frame *gocv.Mat, bbox utils.BoundingBox, plotColor color.RGBA) {
	x := int(utils.CenterOfBbox(bbox).X)
	y := int(bbox.Y1)

	triangle := [][]image.Point{{image.Pt(x, y), image.Pt(x-10, y-20), image.Pt(x+10, y-20)}}
	pv := gocv.NewPointsVectorFromPoints(triangle)
	defer pv.Close()

	gocv.FillPoly(frame, pv, plotColor)
	gocv.Polylines(frame, pv, true, blackRGB, 2)
}

//drawPanel draws a translucent white panel with text lines in it
func drawPanel(frame *gocv.Mat, rect image.Rectangle, lines []string) {
	overlay := frame.Clone()
	defer overlay.Close()

	gocv.Rectangle(&overlay, rect, whiteRGB, -1)
	gocv.AddWeighted(overlay, 0.4, *frame, 0.6, 0, frame)

	for i, line := range lines {
		gocv.PutText(frame, line, image.Pt(rect.Min.X+10, rect.Min.Y+30*(i+1)), gocv.FontHersheySimplex, 1, blackRGB, 3)
	}
}

//DrawAnnotations draws tracks, camera movement and team ball control on every frame, in place
func DrawAnnotations(frames []gocv.Mat, store *tracking.TrackStore, movement camera.Movement, control []int) {
	for frameNum := range frames {
		frame := &frames[frameNum]

		if frameNum < len(store.Players) {
			for id, rec := range store.Players[frameNum] {
				drawEllipse(frame, rec.Bbox, teamColor(rec), id)
				if rec.HasBall {
					drawTriangle(frame, rec.Bbox, hasBallColor)
				}
			}
		}

		if frameNum < len(store.Referees) {
			for _, rec := range store.Referees[frameNum] {
				drawEllipse(frame, rec.Bbox, refereeColor, 0)
			}
		}

		if frameNum < len(store.Ball) {
			for _, rec := range store.Ball[frameNum] {
				drawTriangle(frame, rec.Bbox, ballColor)
			}
		}

		if frameNum < len(movement) {
			m := movement[frameNum]
			drawPanel(frame, image.Rect(0, 0, 500, 100), []string{
				fmt.Sprintf("Camera Movement X: %.2f", m.X),
				fmt.Sprintf("Camera Movement Y: %.2f", m.Y),
			})
		}

		if frameNum < len(control) {
			drawTeamControl(frame, control[:frameNum+1])
		}

		drawSpeeds(frame, store, frameNum)
	}
}

//drawTeamControl prints each team's share of ball control up to the current frame
func drawTeamControl(frame *gocv.Mat, control []int) {
	dark, light := 0, 0
	for _, team := range control {
		switch team {
		case utils.DarkTeamID:
			dark++
		case utils.LightTeamID:
			light++
		}
	}

	total := dark + light
	if total == 0 {
		return
	}

	w, h := frame.Cols(), frame.Rows()
	drawPanel(frame, image.Rect(w-550, h-130, w-50, h-30), []string{
		fmt.Sprintf("Dark Team Ball Control: %.2f%%", float64(dark)/float64(total)*100),
		fmt.Sprintf("Light Team Ball Control: %.2f%%", float64(light)/float64(total)*100),
	})
}

//drawSpeeds writes speed and covered distance under every player that has them
func drawSpeeds(frame *gocv.Mat, store *tracking.TrackStore, frameNum int) {
	if frameNum >= len(store.Players) {
		return
	}

	for _, rec := range store.Players[frameNum] {
		if rec.Speed == nil || rec.Distance == nil {
			continue
		}

		foot := utils.FootPosition(rec.Bbox)
		pos := image.Pt(int(foot.X), int(foot.Y)+40)
		gocv.PutText(frame, fmt.Sprintf("%.2f km/h", *rec.Speed), pos, gocv.FontHersheySimplex, 0.5, blackRGB, 2)
		gocv.PutText(frame, fmt.Sprintf("%.2f m", *rec.Distance), image.Pt(pos.X, pos.Y+20), gocv.FontHersheySimplex, 0.5, blackRGB, 2)
	}
}
