// Package detector reads object detections produced by the external YOLO process.
package detector

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

const (
	frameHeader = "Frame #:"
	fpsPrefix   = "FPS: "
	endMarker   = "EOF"
	objectJSON  = "{\"Class\":"
)

//object is a single detection line as printed by the detector script
type object struct {
	Class      string
	Confidence float64
	Xmin       float64
	Ymin       float64
	Xmax       float64
	Ymax       float64
}

//Stream parses the detector's line protocol: a "Frame #: <n>" header opens each frame, followed by one JSON object
//per detection, and a final "EOF" line closes the stream. "FPS: " lines and any other output are ignored.
//Stream implements tracking.Detector for detectors that walk the video once, front to back.
type Stream struct {
	scanner *bufio.Scanner
	//a frame header was read and its frame is not returned yet
	open bool
	done bool
	//frames returned so far
	frames int
}

//NewStream returns a Stream reading from r
func NewStream(r io.Reader) *Stream {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	return &Stream{scanner: scanner}
}

//Frames returns the number of frames read so far
func (s *Stream) Frames() int {
	return s.frames
}

//Next returns the detections of the next frame, or io.EOF once the end marker was consumed. Input that ends
//without the marker yields io.ErrUnexpectedEOF.
func (s *Stream) Next() ([]tracking.Detection, error) {
	if s.done {
		return nil, io.EOF
	}

	detections := make([]tracking.Detection, 0)

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())

		switch {
		case strings.HasPrefix(line, frameHeader):
			if !s.open {
				s.open = true
				continue
			}
			s.frames++
			return detections, nil

		case line == endMarker:
			s.done = true
			if !s.open {
				return nil, io.EOF
			}
			s.open = false
			s.frames++
			return detections, nil

		case strings.HasPrefix(line, fpsPrefix):
			continue

		case strings.HasPrefix(line, objectJSON):
			if !s.open {
				return nil, fmt.Errorf("Next: Detection before the first frame header: '%s'", line)
			}

			det, err := parseObject(line)
			if err != nil {
				return nil, fmt.Errorf("Next: Frame %d, got '%w'", s.frames, err)
			}
			detections = append(detections, det)
		}
	}

	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("Next: Could not read detector output, got '%w'", err)
	}

	return nil, fmt.Errorf("Next: Detector output ended after %d frames without '%s': %w", s.frames, endMarker, io.ErrUnexpectedEOF)
}

//DetectBatch returns the next count frames. Frames must be requested in order, starting at frame 0.
func (s *Stream) DetectBatch(start, count int) ([][]tracking.Detection, error) {
	if start != s.frames {
		return nil, fmt.Errorf("DetectBatch: Asked for frame %d, next frame in stream is %d", start, s.frames)
	}

	batch := make([][]tracking.Detection, 0, count)
	for i := 0; i < count; i++ {
		dets, err := s.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("DetectBatch: Stream ended at frame %d, asked up to %d: %w", s.frames, start+count, io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, fmt.Errorf("DetectBatch: %w", err)
		}
		batch = append(batch, dets)
	}

	return batch, nil
}

//parseObject decodes one detection line
func parseObject(line string) (tracking.Detection, error) {
	obj := object{}
	if err := json.Unmarshal([]byte(line), &obj); err != nil {
		return tracking.Detection{}, err
	}

	return tracking.Detection{
		Class:      normalizeClass(obj.Class),
		Confidence: obj.Confidence,
		Bbox:       utils.BoundingBox{X1: obj.Xmin, Y1: obj.Ymin, X2: obj.Xmax, Y2: obj.Ymax},
	}, nil
}

//normalizeClass maps the model's class names onto the ones the tracker knows
func normalizeClass(class string) string {
	c := strings.ToLower(strings.TrimSpace(class))
	switch c {
	case "sports ball", "football":
		return utils.ClassBall
	case "keeper":
		return utils.ClassGoalkeeper
	}

	return c
}
