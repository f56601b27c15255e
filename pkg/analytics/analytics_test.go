package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

func player(x1, y1, x2, y2 float64, team int) *tracking.TrackRecord {
	return &tracking.TrackRecord{Bbox: utils.BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}, Team: team}
}

func TestAssignBall(t *testing.T) {
	a := NewBallAssigner(0)
	players := tracking.FrameTracks{
		3: player(100, 100, 140, 200, utils.DarkTeamID),
		8: player(300, 100, 340, 200, utils.LightTeamID),
	}

	tests := []struct {
		name string
		ball utils.BoundingBox
		want int
	}{
		{name: "at the right foot of 3", ball: utils.BoundingBox{X1: 145, Y1: 195, X2: 155, Y2: 205}, want: 3},
		{name: "at the left foot of 8", ball: utils.BoundingBox{X1: 290, Y1: 190, X2: 300, Y2: 200}, want: 8},
		{name: "too far from everybody", ball: utils.BoundingBox{X1: 900, Y1: 900, X2: 910, Y2: 910}, want: utils.NoPlayerID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.AssignBall(players, tt.ball))
		})
	}

	assert.Equal(t, utils.NoPlayerID, a.AssignBall(tracking.FrameTracks{}, utils.BoundingBox{}))
}

func TestAssignPossession(t *testing.T) {
	store := tracking.NewTrackStore(4)
	for i := 0; i < 4; i++ {
		store.Players[i][3] = player(100, 100, 140, 200, utils.DarkTeamID)
		store.Players[i][8] = player(300, 100, 340, 200, utils.LightTeamID)
	}
	ballAt := func(frame int, x, y float64) {
		store.Ball[frame][utils.BallTrackID] = &tracking.TrackRecord{Bbox: utils.BoundingBox{X1: x - 5, Y1: y - 5, X2: x + 5, Y2: y + 5}}
	}
	//frame 0: nobody has it, frame 1: dark, frame 2: loose ball, frame 3: light
	ballAt(0, 800, 800)
	ballAt(1, 150, 200)
	ballAt(3, 300, 200)

	p := AssignPossession(store, NewBallAssigner(70))

	assert.Equal(t, []int{utils.NoTeamID, utils.DarkTeamID, utils.DarkTeamID, utils.LightTeamID}, p.Control)
	require.Len(t, p.Percentages, 2)
	assert.InDelta(t, 200.0/3, p.Percentages[utils.DarkTeamID], 1e-9)
	assert.InDelta(t, 100.0/3, p.Percentages[utils.LightTeamID], 1e-9)

	assert.False(t, store.Players[0][3].HasBall)
	assert.True(t, store.Players[1][3].HasBall)
	assert.False(t, store.Players[1][8].HasBall)
	assert.False(t, store.Players[2][3].HasBall)
	assert.True(t, store.Players[3][8].HasBall)
}

func TestSpeedDistance(t *testing.T) {
	store := tracking.NewTrackStore(11)
	//player 1 walks 1 meter per frame along x, referee 2 stands still
	for i := 0; i < 11; i++ {
		store.Players[i][1] = &tracking.TrackRecord{PositionTransformed: &utils.Point{X: float64(i), Y: 10}}
		store.Referees[i][2] = &tracking.TrackRecord{PositionTransformed: &utils.Point{X: 5, Y: 5}}
	}
	//player 3 only has a pitch position on the first frame
	store.Players[0][3] = &tracking.TrackRecord{PositionTransformed: &utils.Point{X: 1, Y: 1}}
	store.Players[5][3] = &tracking.TrackRecord{}

	NewSpeedDistance(5, 24).Add(store)

	//5 meters in 5/24 s = 24 m/s = 86.4 km/h
	for i := 0; i < 10; i++ {
		rec := store.Players[i][1]
		require.NotNil(t, rec.Speed, "frame %d", i)
		assert.InDelta(t, 86.4, *rec.Speed, 1e-9)
	}
	assert.InDelta(t, 5, *store.Players[4][1].Distance, 1e-9)
	assert.InDelta(t, 10, *store.Players[5][1].Distance, 1e-9)
	//the last frame closes the final window and gets nothing
	assert.Nil(t, store.Players[10][1].Speed)

	assert.InDelta(t, 0, *store.Referees[3][2].Speed, 1e-9)
	assert.Nil(t, store.Players[0][3].Speed)
	assert.Nil(t, store.Ball[0][utils.BallTrackID])
}
