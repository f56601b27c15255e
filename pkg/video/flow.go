package video

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/chenBenjamin97/football-analyzer/pkg/camera"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

//FlowTracker is the OpenCV camera.FeatureTracker: Shi-Tomasi corners and pyramidal Lucas-Kanade optical flow
//over in-memory frames
type FlowTracker struct {
	frames []gocv.Mat
	cfg    camera.Config
	//grayscale frames, converted on first use
	gray map[int]gocv.Mat
}

//NewFlowTracker returns a FlowTracker over frames. Close releases its grayscale copies, not the frames.
func NewFlowTracker(frames []gocv.Mat, cfg camera.Config) *FlowTracker {
	return &FlowTracker{frames: frames, cfg: cfg, gray: make(map[int]gocv.Mat)}
}

//Close releases the grayscale frames
func (f *FlowTracker) Close() {
	for i, m := range f.gray {
		m.Close()
		delete(f.gray, i)
	}
}

//grayFrame returns frame i in grayscale. Only the last two frames are kept.
func (f *FlowTracker) grayFrame(i int) (gocv.Mat, error) {
	if m, ok := f.gray[i]; ok {
		return m, nil
	}

	if i < 0 || i >= len(f.frames) {
		return gocv.Mat{}, fmt.Errorf("frame %d out of range [0, %d)", i, len(f.frames))
	}

	for j, m := range f.gray {
		if j < i-1 {
			m.Close()
			delete(f.gray, j)
		}
	}

	m := gocv.NewMat()
	gocv.CvtColor(f.frames[i], &m, gocv.ColorBGRToGray)
	f.gray[i] = m

	return m, nil
}

//DetectFeatures finds corners in every mask band. OpenCV's own block size is used; cfg.BlockSize has no binding.
func (f *FlowTracker) DetectFeatures(frame int, mask camera.Mask) ([]utils.Point, error) {
	gray, err := f.grayFrame(frame)
	if err != nil {
		return nil, fmt.Errorf("DetectFeatures: %w", err)
	}

	features := make([]utils.Point, 0)
	for _, band := range mask.Bands {
		region := gray.Region(image.Rect(band.From, 0, band.To, mask.Height))

		corners := gocv.NewMat()
		gocv.GoodFeaturesToTrack(region, &corners, f.cfg.MaxCorners, f.cfg.QualityLevel, f.cfg.MinDistance)

		for i := 0; i < corners.Rows(); i++ {
			v := corners.GetVecfAt(i, 0)
			features = append(features, utils.Point{X: float64(v[0]) + float64(band.From), Y: float64(v[1])})
		}

		corners.Close()
		region.Close()
	}

	return features, nil
}

//TrackFeatures runs pyramidal Lucas-Kanade from frame prev into frame cur
func (f *FlowTracker) TrackFeatures(prev, cur int, features []utils.Point) ([]utils.Point, []bool, error) {
	prevGray, err := f.grayFrame(prev)
	if err != nil {
		return nil, nil, fmt.Errorf("TrackFeatures: %w", err)
	}
	curGray, err := f.grayFrame(cur)
	if err != nil {
		return nil, nil, fmt.Errorf("TrackFeatures: %w", err)
	}

	prevPts, err := pointsToMat(features)
	if err != nil {
		return nil, nil, fmt.Errorf("TrackFeatures: %w", err)
	}
	defer prevPts.Close()

	nextPts := gocv.NewMat()
	defer nextPts.Close()
	status := gocv.NewMat()
	defer status.Close()
	flowErr := gocv.NewMat()
	defer flowErr.Close()

	criteria := gocv.NewTermCriteria(gocv.Count|gocv.EPS, f.cfg.MaxIterations, f.cfg.Epsilon)
	winSize := image.Pt(f.cfg.WinSize, f.cfg.WinSize)
	gocv.CalcOpticalFlowPyrLKWithParams(prevGray, curGray, prevPts, nextPts, &status, &flowErr, winSize, f.cfg.MaxLevel, criteria, 0, 1e-4)

	next := make([]utils.Point, len(features))
	found := make([]bool, len(features))
	for i := range features {
		if i >= nextPts.Rows() || i >= status.Rows() {
			break
		}
		v := nextPts.GetVecfAt(i, 0)
		next[i] = utils.Point{X: float64(v[0]), Y: float64(v[1])}
		found[i] = status.GetUCharAt(i, 0) == 1
	}

	return next, found, nil
}

//pointsToMat packs points into an Nx1 CV_32FC2 Mat
func pointsToMat(points []utils.Point) (gocv.Mat, error) {
	buf := make([]byte, 8*len(points))
	for i, p := range points {
		binary.LittleEndian.PutUint32(buf[8*i:], math.Float32bits(float32(p.X)))
		binary.LittleEndian.PutUint32(buf[8*i+4:], math.Float32bits(float32(p.Y)))
	}

	m, err := gocv.NewMatFromBytes(len(points), 1, gocv.MatTypeCV32FC2, buf)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("Could not build points matrix, got '%w'", err)
	}

	return m, nil
}

var _ camera.FeatureTracker = (*FlowTracker)(nil)
