package tracking

import (
	"fmt"
	"log"

	"github.com/chenBenjamin97/football-analyzer/pkg/cache"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//Detector runs object detection. DetectBatch must return exactly count frames, starting at frame start,
//in presentation order (frames without objects are empty slices).
type Detector interface {
	DetectBatch(start, count int) ([][]Detection, error)
}

//ContinuityTracker assigns persistent identities. Given one frame of detections it returns the detections it
//tracks, each with a positive TrackID that stays the same for the same physical object across frames.
type ContinuityTracker interface {
	Update(detections []Detection) ([]Detection, error)
}

//Tracker turns per-frame detections into a TrackStore
type Tracker struct {
	detector   Detector
	continuity ContinuityTracker
	stubs      cache.Store
	batchSize  int
}

//NewTracker returns a Tracker. stubs may be nil, which disables stub reading and writing.
func NewTracker(detector Detector, continuity ContinuityTracker, stubs cache.Store) *Tracker {
	return &Tracker{
		detector:   detector,
		continuity: continuity,
		stubs:      stubs,
		batchSize:  utils.DetectionBatchSize,
	}
}

//DetectFrames runs the detector over frameCount frames, utils.DetectionBatchSize frames per call.
//Batches are issued one after the other, so the result is in presentation order.
func (t *Tracker) DetectFrames(frameCount int) ([][]Detection, error) {
	detections := make([][]Detection, 0, frameCount)

	for start := 0; start < frameCount; start += t.batchSize {
		count := t.batchSize
		if start+count > frameCount {
			count = frameCount - start
		}

		batch, err := t.detector.DetectBatch(start, count)
		if err != nil {
			return nil, fmt.Errorf("DetectFrames: Batch starting at frame %d failed, got '%w'", start, err)
		}

		if len(batch) != count {
			return nil, fmt.Errorf("DetectFrames: Asked for %d frames from frame %d, got %d: %w", count, start, len(batch), utils.ErrBatchSize)
		}

		detections = append(detections, batch...)
	}

	return detections, nil
}

//GetObjectTracks returns a TrackStore for frameCount frames. When stubPath holds a stub it is returned as is,
//otherwise detection and tracking run and the result is saved to stubPath (if not empty).
func (t *Tracker) GetObjectTracks(frameCount int, stubPath string) (*TrackStore, error) {
	if stubPath != "" && t.stubs != nil && t.stubs.Exists(stubPath) {
		store := &TrackStore{}
		if err := t.stubs.Load(stubPath, store); err != nil {
			return nil, fmt.Errorf("GetObjectTracks: %w", err)
		}

		if !store.valid(frameCount) {
			return nil, fmt.Errorf("GetObjectTracks: Stub '%s' does not hold %d frames: %w", stubPath, frameCount, utils.ErrStubMismatch)
		}

		log.Printf("GetObjectTracks: Loaded tracks for %d frames from '%s'", frameCount, stubPath)
		return store, nil
	}

	detections, err := t.DetectFrames(frameCount)
	if err != nil {
		return nil, fmt.Errorf("GetObjectTracks: %w", err)
	}

	store := NewTrackStore(frameCount)

	for frameNum, frameDetections := range detections {
		//goalkeeper detections are unreliable, merge them with players before tracking
		toTrack := make([]Detection, 0, len(frameDetections))
		ballConfidence := -1.0
		for _, det := range frameDetections {
			if det.Class == utils.ClassGoalkeeper {
				det.Class = utils.ClassPlayer
			}

			if det.Class == utils.ClassBall {
				//a single ball per frame, the most confident one
				if det.Confidence > ballConfidence {
					ballConfidence = det.Confidence
					store.Ball[frameNum][utils.BallTrackID] = &TrackRecord{Bbox: det.Bbox}
				}
				continue
			}

			toTrack = append(toTrack, det)
		}

		tracked, err := t.continuity.Update(toTrack)
		if err != nil {
			return nil, fmt.Errorf("GetObjectTracks: Tracking failed on frame %d, got '%w'", frameNum, err)
		}

		for _, det := range tracked {
			switch det.Class {
			case utils.ClassPlayer:
				store.Players[frameNum][det.TrackID] = &TrackRecord{Bbox: det.Bbox}
			case utils.ClassReferee:
				store.Referees[frameNum][det.TrackID] = &TrackRecord{Bbox: det.Bbox}
			}
		}
	}

	if stubPath != "" && t.stubs != nil {
		if err := t.stubs.Save(stubPath, store); err != nil {
			return nil, fmt.Errorf("GetObjectTracks: %w", err)
		}
	}

	return store, nil
}
