package bytetrack

import "math"

// Tlwh (top-left x, top-left y, width, height)
type Tlwh [4]float64

// Tlbr (top-left x, top-left y, bottom-right x, bottom-right y)
type Tlbr [4]float64

// Xyah (center x, center y, aspect ratio, height), the Kalman filter measurement space
type Xyah [4]float64

// Rect is a box in Tlwh format
type Rect struct {
	Tlwh Tlwh
}

// NewRect creates a Rect from its top-left corner and size
func NewRect(x, y, width, height float64) Rect {
	return Rect{Tlwh: Tlwh{x, y, width, height}}
}

// RectFromTlbr creates a Rect from its corners
func RectFromTlbr(tlbr Tlbr) Rect {
	return NewRect(tlbr[0], tlbr[1], tlbr[2]-tlbr[0], tlbr[3]-tlbr[1])
}

// X returns the top-left x coordinate
func (r Rect) X() float64 { return r.Tlwh[0] }

// Y returns the top-left y coordinate
func (r Rect) Y() float64 { return r.Tlwh[1] }

// Width returns the width of the rectangle
func (r Rect) Width() float64 { return r.Tlwh[2] }

// Height returns the height of the rectangle
func (r Rect) Height() float64 { return r.Tlwh[3] }

// Tlbr converts the rectangle to corner format
func (r Rect) Tlbr() Tlbr {
	return Tlbr{r.Tlwh[0], r.Tlwh[1], r.Tlwh[0] + r.Tlwh[2], r.Tlwh[1] + r.Tlwh[3]}
}

// Xyah converts the rectangle to (center x, center y, aspect ratio, height)
func (r Rect) Xyah() Xyah {
	return Xyah{
		r.Tlwh[0] + r.Tlwh[2]/2,
		r.Tlwh[1] + r.Tlwh[3]/2,
		r.Tlwh[2] / r.Tlwh[3],
		r.Tlwh[3],
	}
}

// IoU calculates the Intersection over Union with another rectangle. Like the reference ByteTrack,
// sizes are measured in inclusive pixel units (+1).
func (r Rect) IoU(other Rect) float64 {
	iw := math.Min(r.Tlwh[0]+r.Tlwh[2], other.Tlwh[0]+other.Tlwh[2]) - math.Max(r.Tlwh[0], other.Tlwh[0]) + 1
	if iw <= 0 {
		return 0
	}

	ih := math.Min(r.Tlwh[1]+r.Tlwh[3], other.Tlwh[1]+other.Tlwh[3]) - math.Max(r.Tlwh[1], other.Tlwh[1]) + 1
	if ih <= 0 {
		return 0
	}

	ua := (r.Tlwh[2]+1)*(r.Tlwh[3]+1) + (other.Tlwh[2]+1)*(other.Tlwh[3]+1) - iw*ih
	return iw * ih / ua
}
