package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/chenBenjamin97/football-analyzer/pkg/camera"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

var (
	xColor     = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	yColor     = color.RGBA{R: 38, G: 139, B: 210, A: 255}
	darkColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	lightColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

//PlotCameraMovement draws the per-frame camera displacement and saves it as a PNG at path
func PlotCameraMovement(movement camera.Movement, path string) error {
	p := plot.New()
	p.Title.Text = "Camera Movement"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Displacement (px)"

	xPts := make(plotter.XYs, len(movement))
	yPts := make(plotter.XYs, len(movement))
	for i, m := range movement {
		xPts[i] = plotter.XY{X: float64(i), Y: m.X}
		yPts[i] = plotter.XY{X: float64(i), Y: m.Y}
	}

	for _, series := range []struct {
		label string
		pts   plotter.XYs
		color color.Color
	}{
		{label: "X", pts: xPts, color: xColor},
		{label: "Y", pts: yPts, color: yColor},
	} {
		line, err := plotter.NewLine(series.pts)
		if err != nil {
			return fmt.Errorf("PlotCameraMovement: Error, got '%w'", err)
		}
		line.Color = series.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(series.label, line)
	}

	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("PlotCameraMovement: Could not save '%s', got '%w'", path, err)
	}

	return nil
}

//PlotPossession draws each team's cumulative share of ball control over the video and saves it as a PNG at path
func PlotPossession(control []int, path string) error {
	p := plot.New()
	p.Title.Text = "Team Ball Control"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Control (%)"
	p.Y.Min = 0
	p.Y.Max = 100

	dark := make(plotter.XYs, 0, len(control))
	light := make(plotter.XYs, 0, len(control))
	darkFrames, lightFrames := 0, 0

	for i, team := range control {
		switch team {
		case utils.DarkTeamID:
			darkFrames++
		case utils.LightTeamID:
			lightFrames++
		}

		total := darkFrames + lightFrames
		if total == 0 {
			continue
		}
		dark = append(dark, plotter.XY{X: float64(i), Y: float64(darkFrames) / float64(total) * 100})
		light = append(light, plotter.XY{X: float64(i), Y: float64(lightFrames) / float64(total) * 100})
	}

	if len(dark) > 0 {
		for _, series := range []struct {
			label string
			pts   plotter.XYs
			color color.Color
		}{
			{label: "Dark team", pts: dark, color: darkColor},
			{label: "Light team", pts: light, color: lightColor},
		} {
			line, err := plotter.NewLine(series.pts)
			if err != nil {
				return fmt.Errorf("PlotPossession: Error, got '%w'", err)
			}
			line.Color = series.color
			line.Width = vg.Points(2)
			p.Add(line)
			p.Legend.Add(series.label, line)
		}
	}

	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("PlotPossession: Could not save '%s', got '%w'", path, err)
	}

	return nil
}
