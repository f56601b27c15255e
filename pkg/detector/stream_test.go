package detector

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
)

const sample = `loading model...
Frame #: 1
{"Class":"player","Confidence":0.91,"Xmin":10.5,"Ymin":20,"Xmax":40,"Ymax":90}
{"Class":"Sports Ball","Confidence":0.4,"Xmin":100,"Ymin":100,"Xmax":110,"Ymax":110}
FPS: 23.1
Frame #: 2
Frame #: 3
{"Class":"referee","Confidence":0.8,"Xmin":1,"Ymin":2,"Xmax":3,"Ymax":4}
EOF
`

func TestStreamNext(t *testing.T) {
	s := NewStream(strings.NewReader(sample))

	first, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, []tracking.Detection{
		{Class: utils.ClassPlayer, Confidence: 0.91, Bbox: utils.BoundingBox{X1: 10.5, Y1: 20, X2: 40, Y2: 90}},
		{Class: utils.ClassBall, Confidence: 0.4, Bbox: utils.BoundingBox{X1: 100, Y1: 100, X2: 110, Y2: 110}},
	}, first)

	second, err := s.Next()
	require.NoError(t, err)
	assert.NotNil(t, second)
	assert.Empty(t, second)

	third, err := s.Next()
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, utils.ClassReferee, third[0].Class)

	assert.Equal(t, 3, s.Frames())

	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
}

func TestStreamDetectBatch(t *testing.T) {
	s := NewStream(strings.NewReader(sample))

	batch, err := s.DetectBatch(0, 2)
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	_, err = s.DetectBatch(0, 1)
	assert.Error(t, err, "frames must be requested in order")

	_, err = s.DetectBatch(2, 2)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestStreamTruncated(t *testing.T) {
	s := NewStream(strings.NewReader("Frame #: 1\n{\"Class\":\"player\",\"Confidence\":0.5,\"Xmin\":0,\"Ymin\":0,\"Xmax\":1,\"Ymax\":1}\n"))

	_, err := s.Next()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestStreamMalformed(t *testing.T) {
	tests := map[string]string{
		"broken json":            "Frame #: 1\n{\"Class\":\"player\",\"Confidence\":\nEOF\n",
		"detection before frame": "{\"Class\":\"player\",\"Confidence\":0.5}\nFrame #: 1\nEOF\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewStream(strings.NewReader(input)).Next()
			assert.Error(t, err)
		})
	}
}

func TestStreamFeedsTracker(t *testing.T) {
	tr := tracking.NewTracker(NewStream(strings.NewReader(sample)), tracking.NewByteTrack(tracking.DefaultByteTrackConfig()), nil)

	store, err := tr.GetObjectTracks(3, "")
	require.NoError(t, err)

	require.Equal(t, 3, store.FrameCount())
	assert.Len(t, store.Players[0], 1)
	assert.Len(t, store.Ball[0], 1)
	assert.Empty(t, store.Players[1])
	assert.Empty(t, store.Ball[1])
}
