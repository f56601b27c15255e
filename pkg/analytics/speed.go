package analytics

import (
	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

const (
	//DefaultFrameWindow is the number of frames speed is averaged over
	DefaultFrameWindow = 5
	//DefaultFrameRate is the frame rate of broadcast footage
	DefaultFrameRate = 24.0
)

//SpeedDistance estimates speed and covered distance from pitch positions
type SpeedDistance struct {
	frameWindow int
	frameRate   float64
}

//NewSpeedDistance returns a SpeedDistance. Non positive arguments fall back to the defaults.
func NewSpeedDistance(frameWindow int, frameRate float64) *SpeedDistance {
	if frameWindow <= 0 {
		frameWindow = DefaultFrameWindow
	}
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}

	return &SpeedDistance{frameWindow: frameWindow, frameRate: frameRate}
}

//Add writes Speed (km/h) and Distance (meters covered so far) on players and referees. The video is cut in
//windows of frameWindow frames; an identity seen with a pitch position at both ends of a window gets the window's
//average speed on every frame of the window it appears in. The ball is left alone.
func (s *SpeedDistance) Add(store *tracking.TrackStore) {
	for _, frames := range [][]tracking.FrameTracks{store.Players, store.Referees} {
		s.add(frames)
	}
}

func (s *SpeedDistance) add(frames []tracking.FrameTracks) {
	total := make(map[int]float64)
	n := len(frames)

	for frameNum := 0; frameNum < n; frameNum += s.frameWindow {
		last := frameNum + s.frameWindow
		if last > n-1 {
			last = n - 1
		}
		if last == frameNum {
			continue
		}

		for id, rec := range frames[frameNum] {
			end, ok := frames[last][id]
			if !ok || rec.PositionTransformed == nil || end.PositionTransformed == nil {
				continue
			}

			distance := utils.MeasureDistance(*rec.PositionTransformed, *end.PositionTransformed)
			elapsed := float64(last-frameNum) / s.frameRate
			speed := distance / elapsed * 3.6

			total[id] += distance
			covered := total[id]

			for b := frameNum; b < last; b++ {
				r, ok := frames[b][id]
				if !ok {
					continue
				}
				sp, d := speed, covered
				r.Speed = &sp
				r.Distance = &d
			}
		}
	}
}
