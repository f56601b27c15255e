package tracking

import (
	"fmt"

	"github.com/chenBenjamin97/football-analyzer/pkg/bytetrack"
)

//ByteTrackConfig holds ByteTrack's thresholds
type ByteTrackConfig struct {
	FrameRate   int
	TrackBuffer int
	TrackThresh float64
	HighThresh  float64
	MatchThresh float64
}

//DefaultByteTrackConfig returns the thresholds used for broadcast football footage
func DefaultByteTrackConfig() ByteTrackConfig {
	return ByteTrackConfig{
		FrameRate:   24,
		TrackBuffer: 30,
		TrackThresh: 0.25,
		HighThresh:  0.35,
		MatchThresh: 0.8,
	}
}

//ByteTrack is a ContinuityTracker backed by the ByteTrack algorithm
type ByteTrack struct {
	tracker *bytetrack.BYTETracker
	labels  map[string]int
	classes []string
}

//NewByteTrack returns a ByteTrack ContinuityTracker
func NewByteTrack(cfg ByteTrackConfig) *ByteTrack {
	return &ByteTrack{
		tracker: bytetrack.NewBYTETracker(cfg.FrameRate, cfg.TrackBuffer, cfg.TrackThresh, cfg.HighThresh, cfg.MatchThresh),
		labels:  make(map[string]int),
	}
}

//label returns the numeric label of a class name, registering it on first use
func (b *ByteTrack) label(class string) int {
	if l, ok := b.labels[class]; ok {
		return l
	}

	l := len(b.classes)
	b.labels[class] = l
	b.classes = append(b.classes, class)
	return l
}

//Update runs one tracker step. The returned detections carry the detector's own box and class, with TrackID set.
func (b *ByteTrack) Update(detections []Detection) ([]Detection, error) {
	objects := make([]bytetrack.Object, len(detections))
	for i, det := range detections {
		objects[i] = bytetrack.Object{
			Rect:  bytetrack.RectFromTlbr(bytetrack.Tlbr{det.Bbox.X1, det.Bbox.Y1, det.Bbox.X2, det.Bbox.Y2}),
			Label: b.label(det.Class),
			Prob:  det.Confidence,
		}
	}

	tracks, err := b.tracker.Update(objects)
	if err != nil {
		return nil, fmt.Errorf("Update: ByteTrack failed, got '%w'", err)
	}

	res := make([]Detection, 0, len(tracks))
	for _, t := range tracks {
		idx := t.DetectionIndex()
		if idx < 0 || idx >= len(detections) {
			continue
		}

		det := detections[idx]
		det.TrackID = t.TrackID()
		res = append(res, det)
	}

	return res, nil
}
