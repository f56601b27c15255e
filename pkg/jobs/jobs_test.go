package jobs

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	id := r.Start("match.mp4")
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	job, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, Running, job.State)
	assert.Equal(t, "match.mp4", job.Video)

	require.NoError(t, r.Finish(id, nil))
	job, err = r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, Done, job.State)
	assert.False(t, job.Finished.IsZero())

	other := r.Start("other.mp4")
	require.NoError(t, r.Finish(other, errors.New("no frames")))
	job, err = r.Get(other)
	require.NoError(t, err)
	assert.Equal(t, Failed, job.State)
	assert.Equal(t, "no frames", job.Error)
}

func TestRegistryUnknown(t *testing.T) {
	r := NewRegistry()

	job, err := r.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Unknown, job.State)

	assert.ErrorIs(t, r.Finish("nope", nil), ErrNotFound)
}

func TestRegistryRun(t *testing.T) {
	r := NewRegistry()
	release := make(chan struct{})

	id := r.Run("match.mp4", func(string) error {
		<-release
		return nil
	})

	job, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, Running, job.State)

	close(release)
	assert.Eventually(t, func() bool {
		job, err := r.Get(id)
		return err == nil && job.State == Done
	}, time.Second, 5*time.Millisecond)
}
