package camera

//Mask marks the frame columns features may be detected in. Every band spans the whole frame height.
type Mask struct {
	Width  int
	Height int
	Bands  []Band
}

//newMask clips bands to the frame and drops the ones left empty
func newMask(width, height int, bands []Band) Mask {
	m := Mask{Width: width, Height: height}

	for _, b := range bands {
		if b.From < 0 {
			b.From = 0
		}
		if b.To > width {
			b.To = width
		}
		if b.From >= b.To || height <= 0 {
			continue
		}
		m.Bands = append(m.Bands, b)
	}

	return m
}

//Allows reports whether a feature at (x, y) lies inside the mask
func (m Mask) Allows(x, y float64) bool {
	if y < 0 || y >= float64(m.Height) {
		return false
	}

	for _, b := range m.Bands {
		if x >= float64(b.From) && x < float64(b.To) {
			return true
		}
	}

	return false
}
