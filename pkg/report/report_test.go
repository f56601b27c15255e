package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenBenjamin97/football-analyzer/pkg/analytics"
	"github.com/chenBenjamin97/football-analyzer/pkg/camera"
	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

func float(v float64) *float64 { return &v }

func sampleStore() *tracking.TrackStore {
	store := tracking.NewTrackStore(3)
	store.Players[0][7] = &tracking.TrackRecord{Team: utils.DarkTeamID, Speed: float(10), Distance: float(1)}
	store.Players[1][7] = &tracking.TrackRecord{Team: utils.DarkTeamID, Speed: float(20), Distance: float(2), HasBall: true}
	store.Players[2][4] = &tracking.TrackRecord{Team: utils.LightTeamID}
	store.Referees[1][9] = &tracking.TrackRecord{Speed: float(5), Distance: float(0.5)}
	store.Ball[1][utils.BallTrackID] = &tracking.TrackRecord{}
	return store
}

func TestBuild(t *testing.T) {
	movement := camera.Movement{{}, {X: -10, Y: 2}, {}}
	possession := analytics.Possession{Control: []int{0, 1, 1}, Percentages: map[int]float64{utils.DarkTeamID: 100}}

	s := Build("match.mp4", sampleStore(), movement, possession, -1)

	want := Summary{
		Video:      "match.mp4",
		Frames:     3,
		BallFrames: 1,
		Possession: map[int]float64{utils.DarkTeamID: 100},
		Camera:     CameraStats{MovingFrames: 1, TotalX: -10, TotalY: 2},
		Players: []PersonStats{
			{ID: 4, Team: utils.LightTeamID, Frames: 1},
			{ID: 7, Team: utils.DarkTeamID, Frames: 2, Distance: 2, TopSpeed: 20, Touches: 1},
		},
		Referees: []PersonStats{{ID: 9, Frames: 1, Distance: 0.5, TopSpeed: 5}},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 2, Build("match.mp4", sampleStore(), movement, possession, 2).BallFrames)
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.json")
	s := Build("match.mp4", sampleStore(), camera.Movement{{}, {}, {}}, analytics.Possession{}, -1)
	s.ID = "job-1"

	require.NoError(t, WriteJSON(path, s))

	loaded, err := ReadJSON(path)
	require.NoError(t, err)
	if diff := cmp.Diff(s, loaded); diff != "" {
		t.Errorf("summary changed on disk (-written +read):\n%s", diff)
	}

	_, err = ReadJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCharts(t *testing.T) {
	dir := t.TempDir()

	cameraPath := filepath.Join(dir, "camera.png")
	require.NoError(t, PlotCameraMovement(camera.Movement{{}, {X: -10, Y: 2}, {X: 3}}, cameraPath))

	possessionPath := filepath.Join(dir, "possession.png")
	require.NoError(t, PlotPossession([]int{0, 1, 1, 2}, possessionPath))

	for _, p := range []string{cameraPath, possessionPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
