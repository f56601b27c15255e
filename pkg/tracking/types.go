package tracking

import (
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//Detection is a single detector output, optionally annotated with a persistent identity by the continuity tracker
type Detection struct {
	Class      string            `json:"Class"`
	Confidence float64           `json:"Confidence"`
	Bbox       utils.BoundingBox `json:"Bbox"`
	TrackID    int               `json:"TrackID,omitempty"` //0 until assigned
}

//TrackRecord is what we know about one identity in one frame. Fields are filled by successive passes:
//tracker (Bbox) -> AddPositions (Position) -> camera adjustment (PositionAdjusted) -> view transform
//(PositionTransformed) -> analytics (Team, HasBall, Speed, Distance)
type TrackRecord struct {
	Bbox                utils.BoundingBox `json:"bbox" cbor:"bbox"`
	Position            *utils.Point      `json:"position,omitempty" cbor:"position,omitempty"`
	PositionAdjusted    *utils.Point      `json:"position_adjusted,omitempty" cbor:"position_adjusted,omitempty"`
	PositionTransformed *utils.Point      `json:"position_transformed,omitempty" cbor:"position_transformed,omitempty"`
	Team                int               `json:"team,omitempty" cbor:"team,omitempty"`
	TeamColor           [3]uint8          `json:"team_color" cbor:"team_color"` //BGR
	HasBall             bool              `json:"has_ball,omitempty" cbor:"has_ball,omitempty"`
	Speed               *float64          `json:"speed,omitempty" cbor:"speed,omitempty"`       //km/h
	Distance            *float64          `json:"distance,omitempty" cbor:"distance,omitempty"` //meters covered so far
}

//FrameTracks maps track ID -> record for a single frame
type FrameTracks map[int]*TrackRecord

//TrackStore holds, per category, one FrameTracks per processed frame.
//Every category always has exactly one entry per frame; a frame without detections is an empty map.
type TrackStore struct {
	Players  []FrameTracks `json:"players" cbor:"players"`
	Referees []FrameTracks `json:"referees" cbor:"referees"`
	Ball     []FrameTracks `json:"ball" cbor:"ball"`
}

//NewTrackStore allocates a store for frameCount frames, each frame with its own empty maps
func NewTrackStore(frameCount int) *TrackStore {
	s := &TrackStore{
		Players:  make([]FrameTracks, frameCount),
		Referees: make([]FrameTracks, frameCount),
		Ball:     make([]FrameTracks, frameCount),
	}

	for i := 0; i < frameCount; i++ {
		s.Players[i] = make(FrameTracks)
		s.Referees[i] = make(FrameTracks)
		s.Ball[i] = make(FrameTracks)
	}

	return s
}

//FrameCount returns the number of frames the store describes
func (s *TrackStore) FrameCount() int {
	return len(s.Players)
}

//Categories returns the per-category frame sequences keyed by category name
func (s *TrackStore) Categories() map[string][]FrameTracks {
	return map[string][]FrameTracks{
		utils.CategoryPlayers:  s.Players,
		utils.CategoryReferees: s.Referees,
		utils.CategoryBall:     s.Ball,
	}
}

//ForEach calls fn for every record of every category and frame
func (s *TrackStore) ForEach(fn func(category string, frameNum, trackID int, rec *TrackRecord)) {
	for category, frames := range s.Categories() {
		for frameNum, frame := range frames {
			for trackID, rec := range frame {
				fn(category, frameNum, trackID, rec)
			}
		}
	}
}

//valid reports whether every category has exactly frameCount non-nil frames
func (s *TrackStore) valid(frameCount int) bool {
	for _, frames := range s.Categories() {
		if len(frames) != frameCount {
			return false
		}
		for _, f := range frames {
			if f == nil {
				return false
			}
		}
	}

	return true
}
