package detector

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strconv"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
)

//Config describes how to run the detector script
type Config struct {
	//Python is the interpreter, "python3" when empty
	Python string
	//Script runs YOLO over a video and prints the Stream protocol
	Script string
	//Model is the weights file passed to the script
	Model string
	//Confidence is the minimal detection confidence the script reports
	Confidence float64
}

//Process runs the detector script over a video and exposes its output as a tracking.Detector
type Process struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stream *Stream
}

//Start launches the detector on videoPath. Close must be called once the detections are consumed.
func Start(ctx context.Context, cfg Config, videoPath string) (*Process, error) {
	python := cfg.Python
	if python == "" {
		python = "python3"
	}

	cmd := exec.CommandContext(ctx, python, cfg.Script,
		"--video", videoPath,
		"--model", cfg.Model,
		"--conf", strconv.FormatFloat(cfg.Confidence, 'f', -1, 64),
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("Start: Error, got '%w'", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("Start: Could not run '%s', got '%w'", cfg.Script, err)
	}

	log.Printf("Start: Detector running on '%s' (pid %d)", videoPath, cmd.Process.Pid)

	return &Process{cmd: cmd, stdout: stdout, stream: NewStream(stdout)}, nil
}

//DetectBatch returns the next count frames of the detector output
func (p *Process) DetectBatch(start, count int) ([][]tracking.Detection, error) {
	return p.stream.DetectBatch(start, count)
}

//Close drains the remaining output and waits for the detector to exit
func (p *Process) Close() error {
	if _, err := io.Copy(io.Discard, p.stdout); err != nil {
		log.Printf("Close: Error draining detector output, got '%v'", err)
	}

	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("Close: Error waiting detector's process, got '%w'", err)
	}

	return nil
}

var _ tracking.Detector = (*Process)(nil)
var _ tracking.Detector = (*Stream)(nil)
