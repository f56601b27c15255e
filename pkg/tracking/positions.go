package tracking

import (
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//AddPositions sets Position on every record: the ball uses its box center, everybody else the foot position
//(bottom-center of the box), which is where a person touches the pitch. Only Position is written, and it depends
//only on Bbox, so calling it again gives the same values.
func AddPositions(store *TrackStore) {
	store.ForEach(func(category string, _, _ int, rec *TrackRecord) {
		var p utils.Point
		if category == utils.CategoryBall {
			p = utils.CenterOfBbox(rec.Bbox)
		} else {
			p = utils.FootPosition(rec.Bbox)
		}
		rec.Position = &p
	})
}

//InterpolateBall fills the frames where the ball was not detected. The ball box is treated as four time series
//(x1, y1, x2, y2) that are linearly interpolated between detections; frames before the first detection take the
//first box and frames after the last detection keep the last box. Returns a new sequence of the same length;
//if the ball was never detected every frame stays empty.
func InterpolateBall(ball []FrameTracks) []FrameTracks {
	boxes := make([][4]float64, len(ball))
	known := make([]bool, len(ball))

	for i, frame := range ball {
		if rec, ok := frame[utils.BallTrackID]; ok {
			boxes[i] = [4]float64{rec.Bbox.X1, rec.Bbox.Y1, rec.Bbox.X2, rec.Bbox.Y2}
			known[i] = true
		}
	}

	res := make([]FrameTracks, len(ball))
	if !utils.FillSequence(boxes, known) {
		for i := range res {
			res[i] = make(FrameTracks)
		}
		return res
	}

	for i, b := range boxes {
		res[i] = FrameTracks{
			utils.BallTrackID: &TrackRecord{Bbox: utils.BoundingBox{X1: b[0], Y1: b[1], X2: b[2], Y2: b[3]}},
		}
	}

	return res
}
