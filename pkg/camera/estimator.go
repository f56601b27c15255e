package camera

import (
	"fmt"
	"log"

	"github.com/chenBenjamin97/football-analyzer/pkg/cache"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//Displacement is the camera movement of one frame relative to the previous one, in pixels (old - new)
type Displacement struct {
	X float64 `json:"x" cbor:"x"`
	Y float64 `json:"y" cbor:"y"`
}

//Movement holds one Displacement per frame; the first frame never moves
type Movement []Displacement

//FeatureTracker gives the estimator access to frames without tying it to a video library
type FeatureTracker interface {
	//DetectFeatures returns corner features of frame inside mask
	DetectFeatures(frame int, mask Mask) ([]utils.Point, error)
	//TrackFeatures follows features from frame prev into frame cur. next and found are parallel to features.
	TrackFeatures(prev, cur int, features []utils.Point) (next []utils.Point, found []bool, err error)
}

//Estimator measures camera movement with sparse optical flow on the pitch borders
type Estimator struct {
	cfg   Config
	mask  Mask
	stubs cache.Store
}

//NewEstimator returns an Estimator for frames of the given size. stubs may be nil, which disables stubs.
func NewEstimator(width, height int, cfg Config, stubs cache.Store) *Estimator {
	return &Estimator{
		cfg:   cfg,
		mask:  newMask(width, height, cfg.Bands),
		stubs: stubs,
	}
}

//Mask returns the feature detection mask built from the frame size
func (e *Estimator) Mask() Mask {
	return e.mask
}

//Config returns the estimator parameters
func (e *Estimator) Config() Config {
	return e.cfg
}

//GetCameraMovement returns the camera movement of frameCount frames. A stub at stubPath is returned as is;
//otherwise movement is measured and saved to stubPath (if not empty).
func (e *Estimator) GetCameraMovement(ft FeatureTracker, frameCount int, stubPath string) (Movement, error) {
	if stubPath != "" && e.stubs != nil && e.stubs.Exists(stubPath) {
		var movement Movement
		if err := e.stubs.Load(stubPath, &movement); err != nil {
			return nil, fmt.Errorf("GetCameraMovement: %w", err)
		}

		if len(movement) != frameCount {
			return nil, fmt.Errorf("GetCameraMovement: Stub '%s' holds %d frames, expected %d: %w", stubPath, len(movement), frameCount, utils.ErrStubMismatch)
		}

		log.Printf("GetCameraMovement: Loaded camera movement for %d frames from '%s'", frameCount, stubPath)
		return movement, nil
	}

	movement := make(Movement, frameCount)

	if frameCount > 0 {
		features, err := ft.DetectFeatures(0, e.mask)
		if err != nil {
			return nil, fmt.Errorf("GetCameraMovement: Feature detection failed on frame 0, got '%w'", err)
		}

		for i := 1; i < frameCount; i++ {
			reseed := false

			if len(features) == 0 {
				reseed = true
			} else {
				d, found, err := e.largestDisplacement(ft, i, features)
				if err != nil {
					return nil, fmt.Errorf("GetCameraMovement: %w", err)
				}

				switch {
				case !found:
					//every feature was lost, start over from this frame
					reseed = true
				case utils.MeasureDistance(utils.Point{}, utils.Point{X: d.X, Y: d.Y}) > e.cfg.MinimumDistance:
					movement[i] = d
					reseed = true
				}
			}

			if reseed {
				if features, err = ft.DetectFeatures(i, e.mask); err != nil {
					return nil, fmt.Errorf("GetCameraMovement: Feature detection failed on frame %d, got '%w'", i, err)
				}
			}
		}
	}

	if stubPath != "" && e.stubs != nil {
		if err := e.stubs.Save(stubPath, movement); err != nil {
			return nil, fmt.Errorf("GetCameraMovement: %w", err)
		}
	}

	return movement, nil
}

//largestDisplacement tracks features into frame cur and returns old - new of the feature that moved the most.
//found is false when no feature could be followed.
func (e *Estimator) largestDisplacement(ft FeatureTracker, cur int, features []utils.Point) (Displacement, bool, error) {
	next, status, err := ft.TrackFeatures(cur-1, cur, features)
	if err != nil {
		return Displacement{}, false, fmt.Errorf("largestDisplacement: Optical flow failed on frame %d, got '%w'", cur, err)
	}

	var best Displacement
	maxDistance := -1.0
	for j, old := range features {
		if j >= len(next) || j >= len(status) || !status[j] {
			continue
		}

		if dist := utils.MeasureDistance(old, next[j]); dist > maxDistance {
			maxDistance = dist
			best.X, best.Y = utils.MeasureXYDistance(old, next[j])
		}
	}

	return best, maxDistance >= 0, nil
}
