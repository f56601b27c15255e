// Package view maps pixel positions to pitch coordinates with a perspective transform computed once from four
// calibration vertices.
package view

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

const (
	//CourtWidth is the width of the pitch section covered by the calibration, in meters
	CourtWidth = 68.0
	//CourtLength is the length of the pitch section covered by the calibration, in meters
	CourtLength = 23.32
)

//DefaultPixelVertices are the corners of the calibrated pitch section in the broadcast frame
var DefaultPixelVertices = [4]utils.Point{
	{X: 110, Y: 1035},
	{X: 265, Y: 275},
	{X: 910, Y: 260},
	{X: 1640, Y: 915},
}

//DefaultTargetVertices are the pitch coordinates, in meters, of DefaultPixelVertices
var DefaultTargetVertices = [4]utils.Point{
	{X: 0, Y: CourtWidth},
	{X: 0, Y: 0},
	{X: CourtLength, Y: 0},
	{X: CourtLength, Y: CourtWidth},
}

//Transformer maps pixels inside the calibrated quadrilateral to pitch meters. It is immutable once built.
type Transformer struct {
	pixel      [4]utils.Point
	homography *mat.Dense
}

//NewTransformer returns a Transformer for the default broadcast calibration
func NewTransformer() (*Transformer, error) {
	return NewTransformerWithVertices(DefaultPixelVertices, DefaultTargetVertices)
}

//NewTransformerWithVertices returns a Transformer mapping pixel[i] onto target[i]
func NewTransformerWithVertices(pixel, target [4]utils.Point) (*Transformer, error) {
	h, err := computeHomography(pixel, target)
	if err != nil {
		return nil, fmt.Errorf("NewTransformerWithVertices: %w", err)
	}

	return &Transformer{pixel: pixel, homography: h}, nil
}

//computeHomography solves the 8 unknowns of H (h22 = 1) from four correspondences p[i] -> q[i]:
//x' = (h00 X + h01 Y + h02) / (h20 X + h21 Y + 1), and the same for y' with the second row.
func computeHomography(p, q [4]utils.Point) (*mat.Dense, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		X, Y := p[i].X, p[i].Y
		x, y := q[i].X, q[i].Y
		r := 2 * i

		a.SetRow(r, []float64{X, Y, 1, 0, 0, 0, -X * x, -Y * x})
		b.SetVec(r, x)

		a.SetRow(r+1, []float64{0, 0, 0, X, Y, 1, -X * y, -Y * y})
		b.SetVec(r+1, y)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("%v: %w", err, utils.ErrDegenerateHomography)
	}

	data := make([]float64, 9)
	for i := 0; i < 8; i++ {
		data[i] = h.AtVec(i)
	}
	data[8] = 1

	return mat.NewDense(3, 3, data), nil
}

//TransformPoint maps a pixel to pitch meters. Points outside the calibrated quadrilateral (its border included
//as inside) return false.
func (t *Transformer) TransformPoint(p utils.Point) (utils.Point, bool) {
	if !insidePolygon(t.pixel[:], p) {
		return utils.Point{}, false
	}

	var res mat.VecDense
	res.MulVec(t.homography, mat.NewVecDense(3, []float64{p.X, p.Y, 1}))

	w := res.AtVec(2)
	if w == 0 {
		return utils.Point{}, false
	}

	return utils.Point{X: res.AtVec(0) / w, Y: res.AtVec(1) / w}, true
}

//AddTransformedPositions writes PositionTransformed on every record that has a PositionAdjusted. Records outside
//the calibrated area get nil. No other field is touched.
func (t *Transformer) AddTransformedPositions(store *tracking.TrackStore) {
	store.ForEach(func(_ string, _, _ int, rec *tracking.TrackRecord) {
		if rec.PositionAdjusted == nil {
			return
		}

		if p, ok := t.TransformPoint(*rec.PositionAdjusted); ok {
			rec.PositionTransformed = &p
		} else {
			rec.PositionTransformed = nil
		}
	})
}

const edgeTolerance = 1e-9

//insidePolygon is an even-odd ray casting test that also accepts points lying on an edge
func insidePolygon(poly []utils.Point, p utils.Point) bool {
	inside := false

	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[j], poly[i]
		if onSegment(a, b, p) {
			return true
		}

		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < xCross {
				inside = !inside
			}
		}
	}

	return inside
}

func onSegment(a, b, p utils.Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > edgeTolerance*math.Max(1, utils.MeasureDistance(a, b)) {
		return false
	}

	return p.X >= math.Min(a.X, b.X)-edgeTolerance && p.X <= math.Max(a.X, b.X)+edgeTolerance &&
		p.Y >= math.Min(a.Y, b.Y)-edgeTolerance && p.Y <= math.Max(a.Y, b.Y)+edgeTolerance
}
