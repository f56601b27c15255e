package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBboxGeometry(t *testing.T) {
	b := BoundingBox{X1: 10, Y1: 20, X2: 31, Y2: 60}

	assert.Equal(t, Point{X: 20.5, Y: 40}, CenterOfBbox(b))
	assert.Equal(t, Point{X: 20.5, Y: 60}, FootPosition(b))
	assert.Equal(t, 21.0, BboxWidth(b))
}

func TestMeasureDistance(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want   float64
	}{
		{"same point", Point{1, 1}, Point{1, 1}, 0},
		{"3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative", Point{-3, -4}, Point{0, 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MeasureDistance(tt.p1, tt.p2), 1e-12)
		})
	}
}

func TestMeasureXYDistance(t *testing.T) {
	dx, dy := MeasureXYDistance(Point{10, 5}, Point{4, 7})
	assert.Equal(t, 6.0, dx)
	assert.Equal(t, -2.0, dy)
}

func TestStubPath(t *testing.T) {
	assert.Equal(t, "", StubPath("", "match.mp4", "tracks"))
	assert.Equal(t, "stubs/match_camera.stub", StubPath("stubs", "videos/match.mp4", "camera"))
}
