package bytetrack

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// STrackState represents the state of a tracked object
type STrackState int

const (
	// New is a freshly detected object
	New STrackState = iota
	// Tracked is an object matched in the latest frame
	Tracked
	// Lost is an object that went unmatched, kept around for re-identification
	Lost
	// Removed is an object lost for too long; its ID is never reused
	Removed
)

// STrack is a single track of an object
type STrack struct {
	kalmanFilter *KalmanFilter
	mean         StateMean
	covariance   *mat.Dense
	rect         Rect
	state        STrackState
	isActivated  bool
	score        float64
	trackID      int
	frameID      int
	startFrameID int
	trackletLen  int
	// index of the detection that last updated this track, in the Update input
	detectionIdx int
	label        int
}

// NewSTrack creates an unactivated track from a detection
func NewSTrack(rect Rect, score float64, detectionIdx int, label int) *STrack {
	return &STrack{
		kalmanFilter: NewKalmanFilter(1.0/20, 1.0/160),
		covariance:   mat.NewDense(8, 8, nil),
		rect:         rect,
		state:        New,
		score:        score,
		detectionIdx: detectionIdx,
		label:        label,
	}
}

// Rect returns the filtered bounding box of the object
func (s *STrack) Rect() Rect { return s.rect }

// State returns the current state of the track
func (s *STrack) State() STrackState { return s.state }

// IsActivated reports whether the track has been confirmed
func (s *STrack) IsActivated() bool { return s.isActivated }

// Score returns the latest detection score
func (s *STrack) Score() float64 { return s.score }

// TrackID returns the persistent identity of the track
func (s *STrack) TrackID() int { return s.trackID }

// FrameID returns the last frame the track was updated on
func (s *STrack) FrameID() int { return s.frameID }

// StartFrameID returns the frame the track started on
func (s *STrack) StartFrameID() int { return s.startFrameID }

// DetectionIndex returns the index of the detection that last updated the track
func (s *STrack) DetectionIndex() int { return s.detectionIdx }

// Label returns the class label of the tracked object
func (s *STrack) Label() int { return s.label }

// Activate starts a new track with the given identity
func (s *STrack) Activate(frameID, trackID int) {
	s.mean, s.covariance = s.kalmanFilter.Initiate(s.rect.Xyah())
	s.updateRect()

	s.state = Tracked
	// only tracks born on the first frame are trusted right away
	if frameID == 1 {
		s.isActivated = true
	}

	s.trackID = trackID
	s.frameID = frameID
	s.startFrameID = frameID
	s.trackletLen = 0
}

// ReActivate revives a lost track with a new detection
func (s *STrack) ReActivate(newTrack *STrack, frameID int) error {
	if err := s.kalmanFilter.Update(&s.mean, s.covariance, newTrack.Rect().Xyah()); err != nil {
		return fmt.Errorf("error re-activating track %d: %w", s.trackID, err)
	}
	s.updateRect()

	s.state = Tracked
	s.isActivated = true
	s.score = newTrack.Score()
	s.detectionIdx = newTrack.DetectionIndex()
	s.label = newTrack.Label()
	s.frameID = frameID
	s.trackletLen = 0

	return nil
}

// Predict advances the track state by one frame
func (s *STrack) Predict() {
	if s.state != Tracked {
		s.mean[7] = 0
	}

	s.kalmanFilter.Predict(&s.mean, s.covariance)
	s.updateRect()
}

// Update corrects the track with a matched detection
func (s *STrack) Update(newTrack *STrack, frameID int) error {
	if err := s.kalmanFilter.Update(&s.mean, s.covariance, newTrack.Rect().Xyah()); err != nil {
		return fmt.Errorf("error updating track %d: %w", s.trackID, err)
	}
	s.updateRect()

	s.state = Tracked
	s.isActivated = true
	s.score = newTrack.Score()
	s.detectionIdx = newTrack.DetectionIndex()
	s.label = newTrack.Label()
	s.frameID = frameID
	s.trackletLen++

	return nil
}

// MarkAsLost marks the track as lost
func (s *STrack) MarkAsLost() { s.state = Lost }

// MarkAsRemoved marks the track as removed
func (s *STrack) MarkAsRemoved() { s.state = Removed }

// updateRect derives the box from the state mean
func (s *STrack) updateRect() {
	w := s.mean[2] * s.mean[3]
	h := s.mean[3]
	s.rect = NewRect(s.mean[0]-w/2, s.mean[1]-h/2, w, h)
}
