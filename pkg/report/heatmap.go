package report

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/view"
)

//pixelsPerCell is the side of one heatmap cell in the saved image
const pixelsPerCell = 16

var pitchGreen = color.NRGBA{R: 34, G: 139, B: 34, A: 255}

//HeatmapGrid counts, per cell of cellMeters x cellMeters, how many times a player of team stood there. Rows follow
//the pitch width, columns its length. Records without a pitch position are skipped.
func HeatmapGrid(store *tracking.TrackStore, team int, cellMeters float64) [][]int {
	cols := int(math.Ceil(view.CourtLength / cellMeters))
	rows := int(math.Ceil(view.CourtWidth / cellMeters))

	grid := make([][]int, rows)
	for r := range grid {
		grid[r] = make([]int, cols)
	}

	for _, frame := range store.Players {
		for _, rec := range frame {
			if rec.Team != team || rec.PositionTransformed == nil {
				continue
			}

			c := int(rec.PositionTransformed.X / cellMeters)
			r := int(rec.PositionTransformed.Y / cellMeters)
			//the far borders belong to the last cell
			if c == cols {
				c--
			}
			if r == rows {
				r--
			}
			if c < 0 || c >= cols || r < 0 || r >= rows {
				continue
			}
			grid[r][c]++
		}
	}

	return grid
}

//HeatmapImage renders a grid on a green pitch, busier cells turning red, scaled up pixelsPerCell times
func HeatmapImage(grid [][]int) *image.NRGBA {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}

	maxCount := 0
	for _, row := range grid {
		for _, v := range row {
			if v > maxCount {
				maxCount = v
			}
		}
	}

	small := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for r, row := range grid {
		for c, v := range row {
			t := 0.0
			if maxCount > 0 {
				t = float64(v) / float64(maxCount)
			}
			small.SetNRGBA(c, r, color.NRGBA{
				R: blend(pitchGreen.R, 255, t),
				G: blend(pitchGreen.G, 0, t),
				B: blend(pitchGreen.B, 0, t),
				A: 255,
			})
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, cols*pixelsPerCell, rows*pixelsPerCell))
	draw.CatmullRom.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)

	return dst
}

func blend(from, to uint8, t float64) uint8 {
	return uint8(float64(from) + (float64(to)-float64(from))*t + 0.5)
}

//SaveHeatmap renders a team's heatmap and saves it as a WebP image at path
func SaveHeatmap(store *tracking.TrackStore, team int, path string) error {
	img := HeatmapImage(HeatmapGrid(store, team, 1))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("SaveHeatmap: Could not create '%s', got '%w'", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("SaveHeatmap: WebP encode, got '%w'", err)
	}

	return nil
}
