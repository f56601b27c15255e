package bytetrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectConversions(t *testing.T) {
	r := RectFromTlbr(Tlbr{10, 20, 30, 60})

	assert.Equal(t, Tlwh{10, 20, 20, 40}, r.Tlwh)
	assert.Equal(t, Tlbr{10, 20, 30, 60}, r.Tlbr())
	assert.Equal(t, Xyah{20, 40, 0.5, 40}, r.Xyah())
}

func TestRectIoU(t *testing.T) {
	a := NewRect(0, 0, 9, 9)

	assert.InDelta(t, 1.0, a.IoU(a), 1e-9)
	assert.Zero(t, a.IoU(NewRect(100, 100, 9, 9)))

	// inclusive sizes: two 10x10 boxes sharing a 5x10 strip
	assert.InDelta(t, 50.0/150.0, a.IoU(NewRect(5, 0, 9, 9)), 1e-9)
}

func TestKalmanFilterInitiate(t *testing.T) {
	kf := NewKalmanFilter(1.0/20, 1.0/160)

	mean, cov := kf.Initiate(Xyah{100, 200, 1, 50})

	assert.Equal(t, StateMean{100, 200, 1, 50, 0, 0, 0, 0}, mean)

	expectedDiag := []float64{25, 25, 1e-4, 25, 9.765625, 9.765625, 1e-10, 9.765625}
	for i, v := range expectedDiag {
		assert.InDelta(t, v, cov.At(i, i), 1e-9, "diagonal %d", i)
	}
	assert.Zero(t, cov.At(0, 1))
}

func TestKalmanFilterPredictUpdate(t *testing.T) {
	kf := NewKalmanFilter(1.0/20, 1.0/160)
	mean, cov := kf.Initiate(Xyah{100, 200, 1, 50})

	kf.Predict(&mean, cov)
	// no velocity yet, the position stays
	assert.InDelta(t, 100, mean[0], 1e-9)
	assert.InDelta(t, 200, mean[1], 1e-9)
	assert.Greater(t, cov.At(0, 0), 25.0)

	require.NoError(t, kf.Update(&mean, cov, Xyah{110, 200, 1, 50}))
	// the corrected state lies between prediction and measurement
	assert.Greater(t, mean[0], 100.0)
	assert.Less(t, mean[0], 110.0)
	assert.Greater(t, mean[4], 0.0)
}

func TestLinearAssignment(t *testing.T) {
	cost := [][]float64{
		{0.1, 0.9, 0.95},
		{0.9, 0.2, 0.95},
	}

	matches, unmatchedRows, unmatchedCols := linearAssignment(cost, 2, 3, 0.8)

	assert.ElementsMatch(t, [][2]int{{0, 0}, {1, 1}}, matches)
	assert.Empty(t, unmatchedRows)
	assert.Equal(t, []int{2}, unmatchedCols)
}

func TestLinearAssignmentRejectsAboveThreshold(t *testing.T) {
	matches, unmatchedRows, unmatchedCols := linearAssignment([][]float64{{0.9}}, 1, 1, 0.8)

	assert.Empty(t, matches)
	assert.Equal(t, []int{0}, unmatchedRows)
	assert.Equal(t, []int{0}, unmatchedCols)

	matches, unmatchedRows, unmatchedCols = linearAssignment(nil, 0, 2, 0.8)
	assert.Empty(t, matches)
	assert.Empty(t, unmatchedRows)
	assert.Equal(t, []int{0, 1}, unmatchedCols)
}

func trackIDs(tracks []*STrack) map[int]int {
	ids := make(map[int]int)
	for _, tr := range tracks {
		ids[tr.DetectionIndex()] = tr.TrackID()
	}
	return ids
}

func TestBYTETrackerKeepsIdentities(t *testing.T) {
	bt := NewBYTETracker(30, 30, 0.25, 0.35, 0.8)

	left := func(dx float64) Object { return Object{Rect: NewRect(100+dx, 100, 40, 80), Prob: 0.9} }
	right := func(dx float64) Object { return Object{Rect: NewRect(600+dx, 300, 40, 80), Prob: 0.9} }

	tracks, err := bt.Update([]Object{left(0), right(0)})
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	first := trackIDs(tracks)
	assert.NotEqual(t, first[0], first[1])

	// detections come in the other order, identities follow the objects
	tracks, err = bt.Update([]Object{right(2), left(2)})
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	second := trackIDs(tracks)
	assert.Equal(t, first[0], second[1])
	assert.Equal(t, first[1], second[0])
}

func TestBYTETrackerConfirmsNewObjectOnSecondSighting(t *testing.T) {
	bt := NewBYTETracker(30, 30, 0.25, 0.35, 0.8)

	a := Object{Rect: NewRect(100, 100, 40, 80), Prob: 0.9}
	b := Object{Rect: NewRect(800, 100, 40, 80), Prob: 0.9}

	tracks, err := bt.Update([]Object{a})
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	// b shows up, but is only reported once seen again
	tracks, err = bt.Update([]Object{a, b})
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, 0, tracks[0].DetectionIndex())

	tracks, err = bt.Update([]Object{a, b})
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	ids := trackIDs(tracks)
	assert.Equal(t, 1, ids[0])
	assert.Equal(t, 2, ids[1])
}

func TestBYTETrackerIgnoresWeakNewObjects(t *testing.T) {
	bt := NewBYTETracker(30, 30, 0.25, 0.35, 0.8)

	tracks, err := bt.Update([]Object{{Rect: NewRect(100, 100, 40, 80), Prob: 0.3}})
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestBYTETrackerReset(t *testing.T) {
	bt := NewBYTETracker(30, 30, 0.25, 0.35, 0.8)
	obj := Object{Rect: NewRect(100, 100, 40, 80), Prob: 0.9}

	_, err := bt.Update([]Object{obj})
	require.NoError(t, err)

	bt.Reset()
	tracks, err := bt.Update([]Object{{Rect: NewRect(500, 500, 40, 80), Prob: 0.9}})
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, 1, tracks[0].TrackID())
}
