package video

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

//ReadVideo decodes every frame of the video at path into memory. The caller owns the frames and must release
//them with CloseFrames.
func ReadVideo(path string) ([]gocv.Mat, float64, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("ReadVideo: Could not open '%s', got '%w'", path, err)
	}
	defer cap.Close()

	fps := cap.Get(gocv.VideoCaptureFPS)

	frames := make([]gocv.Mat, 0)
	frameMat := gocv.NewMat()
	defer frameMat.Close()

	for cap.Read(&frameMat) {
		if frameMat.Empty() {
			continue
		}
		frames = append(frames, frameMat.Clone())
	}

	if len(frames) == 0 {
		return nil, 0, fmt.Errorf("ReadVideo: No frames in '%s'", path)
	}

	return frames, fps, nil
}

//SaveVideo writes frames as an XVID encoded video at path
func SaveVideo(frames []gocv.Mat, path string, fps float64) error {
	if len(frames) == 0 {
		return errors.New("SaveVideo: No frames to write")
	}

	videoWriter, err := gocv.VideoWriterFile(path, "XVID", fps, frames[0].Cols(), frames[0].Rows(), true)
	if err != nil {
		return fmt.Errorf("SaveVideo: Could not create '%s', got '%w'", path, err)
	}
	defer videoWriter.Close()

	for i, frame := range frames {
		if err := videoWriter.Write(frame); err != nil {
			return fmt.Errorf("SaveVideo: Could not write frame %d, got '%w'", i, err)
		}
	}

	return nil
}

//CloseFrames releases decoded frames
func CloseFrames(frames []gocv.Mat) {
	for i := range frames {
		frames[i].Close()
	}
}
