package camera

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenBenjamin97/football-analyzer/pkg/cache"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

type trackCall struct {
	prev, cur int
	features  []utils.Point
}

//fakeFlow simulates a camera panning over a static scene: shift[i] is the scene offset in frame i
type fakeFlow struct {
	shift    []utils.Point
	noCorner map[int]bool
	lost     map[int]bool

	detected []int
	tracked  []trackCall
}

var scene = []utils.Point{{X: 5, Y: 100}, {X: 10, Y: 400}, {X: 950, Y: 700}}

func (f *fakeFlow) DetectFeatures(frame int, _ Mask) ([]utils.Point, error) {
	f.detected = append(f.detected, frame)
	if f.noCorner[frame] {
		return nil, nil
	}

	res := make([]utils.Point, len(scene))
	for i, p := range scene {
		res[i] = utils.Point{X: p.X + f.shift[frame].X, Y: p.Y + f.shift[frame].Y}
	}
	return res, nil
}

func (f *fakeFlow) TrackFeatures(prev, cur int, features []utils.Point) ([]utils.Point, []bool, error) {
	f.tracked = append(f.tracked, trackCall{prev: prev, cur: cur, features: features})

	delta := f.shift[cur].Sub(f.shift[prev])
	next := make([]utils.Point, len(features))
	found := make([]bool, len(features))
	for i, p := range features {
		next[i] = utils.Point{X: p.X + delta.X, Y: p.Y + delta.Y}
		found[i] = !f.lost[cur]
	}
	return next, found, nil
}

//failingFlow must never be reached
type failingFlow struct{}

func (failingFlow) DetectFeatures(int, Mask) ([]utils.Point, error) {
	return nil, errors.New("unexpected call")
}

func (failingFlow) TrackFeatures(int, int, []utils.Point) ([]utils.Point, []bool, error) {
	return nil, nil, errors.New("unexpected call")
}

func newTestEstimator(stubs cache.Store) *Estimator {
	return NewEstimator(1920, 1080, DefaultConfig(), stubs)
}

func TestGetCameraMovementStaticFrames(t *testing.T) {
	ft := &fakeFlow{shift: make([]utils.Point, 3)}

	movement, err := newTestEstimator(nil).GetCameraMovement(ft, 3, "")
	require.NoError(t, err)

	assert.Equal(t, Movement{{}, {}, {}}, movement)
	assert.Equal(t, []int{0}, ft.detected)
}

func TestGetCameraMovementThreshold(t *testing.T) {
	tests := []struct {
		name         string
		shift        utils.Point
		wantMovement Displacement
		wantDetected []int
	}{
		{
			name:         "equal to the minimum distance",
			shift:        utils.Point{X: 5},
			wantMovement: Displacement{},
			wantDetected: []int{0},
		},
		{
			name:         "above the minimum distance",
			shift:        utils.Point{X: 10, Y: -4},
			wantMovement: Displacement{X: -10, Y: 4},
			wantDetected: []int{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeFlow{shift: []utils.Point{{}, tt.shift}}

			movement, err := newTestEstimator(nil).GetCameraMovement(ft, 2, "")
			require.NoError(t, err)

			require.Len(t, movement, 2)
			assert.Equal(t, Displacement{}, movement[0])
			assert.Equal(t, tt.wantMovement, movement[1])
			assert.Equal(t, tt.wantDetected, ft.detected)
		})
	}
}

func TestGetCameraMovementKeepsFeaturesBelowThreshold(t *testing.T) {
	ft := &fakeFlow{shift: []utils.Point{{}, {X: 3}, {X: 6}}}

	movement, err := newTestEstimator(nil).GetCameraMovement(ft, 3, "")
	require.NoError(t, err)
	assert.Equal(t, Movement{{}, {}, {}}, movement)

	require.Len(t, ft.tracked, 2)
	assert.Equal(t, 0, ft.tracked[0].prev)
	assert.Equal(t, 1, ft.tracked[0].cur)
	assert.Equal(t, 1, ft.tracked[1].prev)
	assert.Equal(t, 2, ft.tracked[1].cur)
	//the frame 0 features are followed again
	assert.Equal(t, ft.tracked[0].features, ft.tracked[1].features)
}

func TestGetCameraMovementNoFeatures(t *testing.T) {
	ft := &fakeFlow{
		shift:    []utils.Point{{}, {X: 20}, {X: 40}},
		noCorner: map[int]bool{0: true},
	}

	movement, err := newTestEstimator(nil).GetCameraMovement(ft, 3, "")
	require.NoError(t, err)

	require.Len(t, movement, 3)
	assert.Equal(t, Displacement{}, movement[1])
	assert.Equal(t, Displacement{X: -20}, movement[2])
	assert.Equal(t, []int{0, 1, 2}, ft.detected)
}

func TestGetCameraMovementLostFeatures(t *testing.T) {
	ft := &fakeFlow{
		shift: []utils.Point{{}, {X: 20}},
		lost:  map[int]bool{1: true},
	}

	movement, err := newTestEstimator(nil).GetCameraMovement(ft, 2, "")
	require.NoError(t, err)

	assert.Equal(t, Movement{{}, {}}, movement)
	assert.Equal(t, []int{0, 1}, ft.detected)
}

func TestGetCameraMovementEmpty(t *testing.T) {
	movement, err := newTestEstimator(nil).GetCameraMovement(failingFlow{}, 0, "")
	require.NoError(t, err)
	assert.Empty(t, movement)
}

func TestGetCameraMovementStub(t *testing.T) {
	stubs, err := cache.NewFileStore()
	require.NoError(t, err)
	stubPath := filepath.Join(t.TempDir(), "match_camera.stub")

	ft := &fakeFlow{shift: []utils.Point{{}, {X: 10}, {X: 10}}}
	computed, err := newTestEstimator(stubs).GetCameraMovement(ft, 3, stubPath)
	require.NoError(t, err)
	require.True(t, stubs.Exists(stubPath))

	loaded, err := newTestEstimator(stubs).GetCameraMovement(failingFlow{}, 3, stubPath)
	require.NoError(t, err)
	if diff := cmp.Diff(computed, loaded); diff != "" {
		t.Errorf("stub differs from computed movement (-computed +loaded):\n%s", diff)
	}

	_, err = newTestEstimator(stubs).GetCameraMovement(failingFlow{}, 4, stubPath)
	assert.ErrorIs(t, err, utils.ErrStubMismatch)
}

func TestMask(t *testing.T) {
	e := NewEstimator(960, 540, DefaultConfig(), nil)

	m := e.Mask()
	assert.Equal(t, []Band{{From: 0, To: 20}, {From: 900, To: 960}}, m.Bands)
	assert.True(t, m.Allows(10, 300))
	assert.True(t, m.Allows(959, 0))
	assert.False(t, m.Allows(20, 300))
	assert.False(t, m.Allows(500, 300))
	assert.False(t, m.Allows(10, 540))

	narrow := NewEstimator(640, 360, DefaultConfig(), nil).Mask()
	assert.Equal(t, []Band{{From: 0, To: 20}}, narrow.Bands)
}
