package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillSequence(t *testing.T) {
	t.Run("interpolates between observations", func(t *testing.T) {
		seq := [][4]float64{{0, 0, 10, 10}, {}, {}, {30, 60, 40, 70}}
		known := []bool{true, false, false, true}

		assert.True(t, FillSequence(seq, known))
		assert.InDeltaSlice(t, []float64{10, 20, 20, 30}, seq[1][:], 1e-9)
		assert.InDeltaSlice(t, []float64{20, 40, 30, 50}, seq[2][:], 1e-9)
	})

	t.Run("back fills leading gap", func(t *testing.T) {
		seq := [][4]float64{{}, {}, {5, 6, 7, 8}}
		known := []bool{false, false, true}

		assert.True(t, FillSequence(seq, known))
		assert.Equal(t, [4]float64{5, 6, 7, 8}, seq[0])
		assert.Equal(t, [4]float64{5, 6, 7, 8}, seq[1])
	})

	t.Run("forward fills trailing gap", func(t *testing.T) {
		seq := [][4]float64{{1, 2, 3, 4}, {}}
		known := []bool{true, false}

		assert.True(t, FillSequence(seq, known))
		assert.Equal(t, [4]float64{1, 2, 3, 4}, seq[1])
	})

	t.Run("nothing observed", func(t *testing.T) {
		seq := [][4]float64{{}, {}}
		assert.False(t, FillSequence(seq, []bool{false, false}))
		assert.Equal(t, [4]float64{}, seq[0])
	})
}
