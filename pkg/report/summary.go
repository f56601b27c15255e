// Package report turns an analyzed match into a JSON summary, PNG charts and pitch heatmaps
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/chenBenjamin97/football-analyzer/pkg/analytics"
	"github.com/chenBenjamin97/football-analyzer/pkg/camera"
	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//PersonStats sums up one tracked identity over the whole video
type PersonStats struct {
	ID       int     `json:"id"`
	Team     int     `json:"team,omitempty"`
	Frames   int     `json:"frames"`
	Distance float64 `json:"distance"`  //meters
	TopSpeed float64 `json:"top_speed"` //km/h
	Touches  int     `json:"touches,omitempty"`
}

//CameraStats sums up the camera movement
type CameraStats struct {
	MovingFrames int     `json:"moving_frames"`
	TotalX       float64 `json:"total_x"`
	TotalY       float64 `json:"total_y"`
}

//Summary is the analysis result served by the API
type Summary struct {
	ID         string          `json:"id,omitempty"`
	Video      string          `json:"video"`
	Frames     int             `json:"frames"`
	BallFrames int             `json:"ball_frames"`
	Possession map[int]float64 `json:"possession"`
	Camera     CameraStats     `json:"camera"`
	Players    []PersonStats   `json:"players"`
	Referees   []PersonStats   `json:"referees"`
}

//Build summarizes an analyzed store. BallFrames counts the frames where the ball was actually detected, so it
//must be taken from the store before interpolation; pass -1 to count the frames with a ball in store.
func Build(video string, store *tracking.TrackStore, movement camera.Movement, possession analytics.Possession, ballFrames int) Summary {
	s := Summary{
		Video:      video,
		Frames:     store.FrameCount(),
		BallFrames: ballFrames,
		Possession: possession.Percentages,
		Players:    people(store.Players),
		Referees:   people(store.Referees),
	}

	if s.Possession == nil {
		s.Possession = make(map[int]float64)
	}

	if ballFrames < 0 {
		s.BallFrames = 0
		for _, frame := range store.Ball {
			if _, ok := frame[utils.BallTrackID]; ok {
				s.BallFrames++
			}
		}
	}

	for _, m := range movement {
		if m.X == 0 && m.Y == 0 {
			continue
		}
		s.Camera.MovingFrames++
		s.Camera.TotalX += m.X
		s.Camera.TotalY += m.Y
	}

	return s
}

//people aggregates per-identity stats, ordered by ID
func people(frames []tracking.FrameTracks) []PersonStats {
	byID := make(map[int]*PersonStats)

	for _, frame := range frames {
		for id, rec := range frame {
			st, ok := byID[id]
			if !ok {
				st = &PersonStats{ID: id}
				byID[id] = st
			}

			st.Frames++
			if rec.Team != utils.NoTeamID {
				st.Team = rec.Team
			}
			if rec.Distance != nil && *rec.Distance > st.Distance {
				st.Distance = *rec.Distance
			}
			if rec.Speed != nil && *rec.Speed > st.TopSpeed {
				st.TopSpeed = *rec.Speed
			}
			if rec.HasBall {
				st.Touches++
			}
		}
	}

	res := make([]PersonStats, 0, len(byID))
	for _, st := range byID {
		res = append(res, *st)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res
}

//WriteJSON stores the summary at path
func WriteJSON(path string, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("WriteJSON: Could not encode summary, got '%w'", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("WriteJSON: Could not write '%s', got '%w'", path, err)
	}

	return nil
}

//ReadJSON loads a summary written by WriteJSON
func ReadJSON(path string) (Summary, error) {
	s := Summary{}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("ReadJSON: Could not read '%s', got '%w'", path, err)
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("ReadJSON: Could not decode '%s', got '%w'", path, err)
	}

	return s, nil
}
