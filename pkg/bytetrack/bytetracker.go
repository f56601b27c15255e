// Package bytetrack implements the ByteTrack multi-object tracker: detections are associated with Kalman
// predicted tracks in two rounds (confident detections first, then low score ones), which keeps identities alive
// through partial occlusions.
package bytetrack

import (
	"fmt"

	hungarian "github.com/arthurkushman/go-hungarian"
)

// Object is a detection handed to the tracker
type Object struct {
	// Rect is the bounding box of the detected object
	Rect Rect
	// Label is the class label of the object
	Label int
	// Prob is the confidence of the detection
	Prob float64
}

// BYTETracker represents the BYTE Tracker
type BYTETracker struct {
	// threshold splitting confident and low score detections
	trackThresh float64
	// minimal score for a detection to start a new track
	highThresh float64
	// maximal IoU distance for the first association
	matchThresh float64
	// number of frames a lost track is kept before removal
	maxTimeLost int
	frameID     int
	// last assigned ID, IDs are never reused
	trackIDCount   int
	trackedStracks []*STrack
	lostStracks    []*STrack
	removedCount   int
}

// NewBYTETracker returns a tracker. trackBuffer is expressed in frames at 30 fps and scaled to frameRate.
func NewBYTETracker(frameRate int, trackBuffer int, trackThresh, highThresh, matchThresh float64) *BYTETracker {
	return &BYTETracker{
		trackThresh: trackThresh,
		highThresh:  highThresh,
		matchThresh: matchThresh,
		maxTimeLost: int(float64(frameRate) / 30.0 * float64(trackBuffer)),
	}
}

// Reset clears the tracked data and restarts ID assignment
func (bt *BYTETracker) Reset() {
	bt.frameID = 0
	bt.trackIDCount = 0
	bt.trackedStracks = nil
	bt.lostStracks = nil
	bt.removedCount = 0
}

// Update consumes the detections of the next frame and returns the activated tracks. Each returned track's
// DetectionIndex points at the object in objects that it was matched with on this frame.
func (bt *BYTETracker) Update(objects []Object) ([]*STrack, error) {
	bt.frameID++

	// Step 1: split detections by score
	var detStracks, detLowStracks []*STrack
	for i, object := range objects {
		strack := NewSTrack(object.Rect, object.Prob, i, object.Label)
		if object.Prob >= bt.trackThresh {
			detStracks = append(detStracks, strack)
		} else {
			detLowStracks = append(detLowStracks, strack)
		}
	}

	var activeStracks, nonActiveStracks []*STrack
	for _, s := range bt.trackedStracks {
		if s.IsActivated() {
			activeStracks = append(activeStracks, s)
		} else {
			nonActiveStracks = append(nonActiveStracks, s)
		}
	}

	strackPool := jointStracks(activeStracks, bt.lostStracks)
	for _, s := range strackPool {
		s.Predict()
	}

	// Step 2: first association, confident detections
	var currentTracked, remainTracked, remainDet, refind []*STrack

	matches, unmatchTrack, unmatchDet := linearAssignment(iouDistance(strackPool, detStracks), len(strackPool), len(detStracks), bt.matchThresh)
	for _, m := range matches {
		track, det := strackPool[m[0]], detStracks[m[1]]
		if track.State() == Tracked {
			if err := track.Update(det, bt.frameID); err != nil {
				return nil, fmt.Errorf("step 2: %w", err)
			}
			currentTracked = append(currentTracked, track)
		} else {
			if err := track.ReActivate(det, bt.frameID); err != nil {
				return nil, fmt.Errorf("step 2: %w", err)
			}
			refind = append(refind, track)
		}
	}

	for _, i := range unmatchDet {
		remainDet = append(remainDet, detStracks[i])
	}
	for _, i := range unmatchTrack {
		if strackPool[i].State() == Tracked {
			remainTracked = append(remainTracked, strackPool[i])
		}
	}

	// Step 3: second association, low score detections
	var currentLost []*STrack

	matches, unmatchTrack, _ = linearAssignment(iouDistance(remainTracked, detLowStracks), len(remainTracked), len(detLowStracks), 0.5)
	for _, m := range matches {
		track, det := remainTracked[m[0]], detLowStracks[m[1]]
		if track.State() == Tracked {
			if err := track.Update(det, bt.frameID); err != nil {
				return nil, fmt.Errorf("step 3: %w", err)
			}
			currentTracked = append(currentTracked, track)
		} else {
			if err := track.ReActivate(det, bt.frameID); err != nil {
				return nil, fmt.Errorf("step 3: %w", err)
			}
			refind = append(refind, track)
		}
	}

	for _, i := range unmatchTrack {
		track := remainTracked[i]
		if track.State() != Lost {
			track.MarkAsLost()
			currentLost = append(currentLost, track)
		}
	}

	// Step 4: unconfirmed tracks get one chance, leftovers start new tracks
	var currentRemoved []*STrack

	matches, unmatchUnconfirmed, unmatchDet := linearAssignment(iouDistance(nonActiveStracks, remainDet), len(nonActiveStracks), len(remainDet), 0.7)
	for _, m := range matches {
		if err := nonActiveStracks[m[0]].Update(remainDet[m[1]], bt.frameID); err != nil {
			return nil, fmt.Errorf("step 4: %w", err)
		}
		currentTracked = append(currentTracked, nonActiveStracks[m[0]])
	}

	for _, i := range unmatchUnconfirmed {
		track := nonActiveStracks[i]
		track.MarkAsRemoved()
		currentRemoved = append(currentRemoved, track)
	}

	for _, i := range unmatchDet {
		track := remainDet[i]
		if track.Score() < bt.highThresh {
			continue
		}
		bt.trackIDCount++
		track.Activate(bt.frameID, bt.trackIDCount)
		currentTracked = append(currentTracked, track)
	}

	// Step 5: drop tracks lost for too long
	var stillLost []*STrack
	for _, s := range bt.lostStracks {
		if s.State() == Lost && bt.frameID-s.FrameID() > bt.maxTimeLost {
			s.MarkAsRemoved()
			currentRemoved = append(currentRemoved, s)
			continue
		}
		stillLost = append(stillLost, s)
	}

	bt.trackedStracks = jointStracks(currentTracked, refind)
	bt.lostStracks = subStracks(jointStracks(subStracks(stillLost, bt.trackedStracks), currentLost), currentRemoved)
	bt.removedCount += len(currentRemoved)

	bt.trackedStracks, bt.lostStracks = removeDuplicateStracks(bt.trackedStracks, bt.lostStracks)

	var output []*STrack
	for _, s := range bt.trackedStracks {
		if s.IsActivated() && s.FrameID() == bt.frameID {
			output = append(output, s)
		}
	}

	return output, nil
}

// jointStracks combines two lists of tracks, avoiding duplicates
func jointStracks(a, b []*STrack) []*STrack {
	exists := make(map[int]bool)
	var res []*STrack

	for _, s := range a {
		exists[s.TrackID()] = true
		res = append(res, s)
	}

	for _, s := range b {
		if !exists[s.TrackID()] {
			exists[s.TrackID()] = true
			res = append(res, s)
		}
	}

	return res
}

// subStracks returns a without the tracks present in b, keeping a's order
func subStracks(a, b []*STrack) []*STrack {
	drop := make(map[int]bool)
	for _, s := range b {
		drop[s.TrackID()] = true
	}

	var res []*STrack
	for _, s := range a {
		if !drop[s.TrackID()] {
			res = append(res, s)
		}
	}

	return res
}

// removeDuplicateStracks drops the younger of each tracked/lost pair that overlaps almost completely
func removeDuplicateStracks(a, b []*STrack) ([]*STrack, []*STrack) {
	dist := iouDistance(a, b)

	aDup := make([]bool, len(a))
	bDup := make([]bool, len(b))
	for i := range dist {
		for j := range dist[i] {
			if dist[i][j] >= 0.15 {
				continue
			}
			timeP := a[i].FrameID() - a[i].StartFrameID()
			timeQ := b[j].FrameID() - b[j].StartFrameID()
			if timeP > timeQ {
				bDup[j] = true
			} else {
				aDup[i] = true
			}
		}
	}

	var aRes, bRes []*STrack
	for i, dup := range aDup {
		if !dup {
			aRes = append(aRes, a[i])
		}
	}
	for i, dup := range bDup {
		if !dup {
			bRes = append(bRes, b[i])
		}
	}

	return aRes, bRes
}

// iouDistance returns the 1 - IoU cost matrix between tracks (rows) and detections (columns)
func iouDistance(tracks, dets []*STrack) [][]float64 {
	if len(tracks) == 0 || len(dets) == 0 {
		return nil
	}

	cost := make([][]float64, len(tracks))
	for i, t := range tracks {
		cost[i] = make([]float64, len(dets))
		for j, d := range dets {
			cost[i][j] = 1 - t.Rect().IoU(d.Rect())
		}
	}

	return cost
}

// linearAssignment solves the assignment problem on the cost matrix, rejecting pairs whose cost exceeds thresh
func linearAssignment(cost [][]float64, rows, cols int, thresh float64) (matches [][2]int, unmatchedRows, unmatchedCols []int) {
	rowDone := make([]bool, rows)
	colDone := make([]bool, cols)

	feasible := false
	for i := range cost {
		for j := range cost[i] {
			if cost[i][j] <= thresh {
				feasible = true
			}
		}
	}

	if feasible {
		// hungarian works on square matrices and maximizes, so solve on padded similarities
		n := rows
		if cols > n {
			n = cols
		}

		similarity := make([][]float64, n)
		for i := range similarity {
			similarity[i] = make([]float64, n)
			if i >= rows {
				continue
			}
			for j := 0; j < cols; j++ {
				if cost[i][j] <= thresh {
					similarity[i][j] = 1 - cost[i][j]
				}
			}
		}

		for i, row := range hungarian.SolveMax(similarity) {
			for j := range row {
				if i < rows && j < cols && cost[i][j] <= thresh && !rowDone[i] && !colDone[j] {
					matches = append(matches, [2]int{i, j})
					rowDone[i] = true
					colDone[j] = true
				}
			}
		}
	}

	for i, done := range rowDone {
		if !done {
			unmatchedRows = append(unmatchedRows, i)
		}
	}
	for j, done := range colDone {
		if !done {
			unmatchedCols = append(unmatchedCols, j)
		}
	}

	return matches, unmatchedRows, unmatchedCols
}
