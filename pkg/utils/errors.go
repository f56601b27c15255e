package utils

import "errors"

var (
	//ErrStubMismatch is returned when a loaded stub does not describe the frames being analyzed
	ErrStubMismatch = errors.New("stub does not match the analyzed video")
	//ErrBatchSize is returned when a detector answers a batch with the wrong number of frames
	ErrBatchSize = errors.New("detector returned a batch of unexpected size")
	//ErrDegenerateHomography is returned when calibration vertices do not define a projective transform
	ErrDegenerateHomography = errors.New("calibration vertices do not define a homography")
	//ErrMovementLength is returned when camera movement does not cover every tracked frame
	ErrMovementLength = errors.New("camera movement does not cover every frame")
)
