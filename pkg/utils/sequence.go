package utils

//FillSequence completes a multi-channel time series in place. known[i] marks the observed samples.
//Gaps between two observations are linearly interpolated, samples before the first observation take its value
//and samples after the last observation keep the last value. Returns false if nothing was observed (seq untouched).
func FillSequence(seq [][4]float64, known []bool) bool {
	first, last := -1, -1
	for i := range seq {
		if known[i] {
			if first == -1 {
				first = i
			}
			last = i
		}
	}

	if first == -1 {
		return false
	}

	for i := 0; i < first; i++ {
		seq[i] = seq[first]
	}

	prev := first
	for i := first + 1; i <= last; i++ {
		if !known[i] {
			continue
		}

		if gap := i - prev; gap > 1 {
			for j := prev + 1; j < i; j++ {
				t := float64(j-prev) / float64(gap)
				for c := 0; c < 4; c++ {
					seq[j][c] = seq[prev][c] + t*(seq[i][c]-seq[prev][c])
				}
			}
		}
		prev = i
	}

	for i := last + 1; i < len(seq); i++ {
		seq[i] = seq[last]
	}

	return true
}
