package utils

import "math"

//Point is a 2-D point, in pixels or in pitch units depending on the pipeline stage
type Point struct {
	X float64 `json:"x" cbor:"x"`
	Y float64 `json:"y" cbor:"y"`
}

//BoundingBox is a detection box in pixel space, (X1,Y1) top-left and (X2,Y2) bottom-right
type BoundingBox struct {
	X1 float64 `json:"x1" cbor:"x1"`
	Y1 float64 `json:"y1" cbor:"y1"`
	X2 float64 `json:"x2" cbor:"x2"`
	Y2 float64 `json:"y2" cbor:"y2"`
}

//Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

//CenterOfBbox returns the geometric center of the box
func CenterOfBbox(b BoundingBox) Point {
	return Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

//BboxWidth returns x2 - x1
func BboxWidth(b BoundingBox) float64 {
	return b.X2 - b.X1
}

//FootPosition returns the bottom-center of the box, where a person touches the ground
func FootPosition(b BoundingBox) Point {
	return Point{X: (b.X1 + b.X2) / 2, Y: b.Y2}
}

//MeasureDistance returns the euclidean distance between p1 and p2
func MeasureDistance(p1, p2 Point) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}

//MeasureXYDistance returns the per-axis distance p1 - p2
func MeasureXYDistance(p1, p2 Point) (float64, float64) {
	return p1.X - p2.X, p1.Y - p2.Y
}
