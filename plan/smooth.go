package plan

import "math"

// MovingAverage returns the centred moving average of values over window
// samples. NaN samples are ignored; ok[i] is false when position i had no
// valid neighbour in range.
func MovingAverage(values []float64, window int) (avg []float64, ok []bool) {
	n := len(values)
	avg = make([]float64, n)
	ok = make([]bool, n)
	if n == 0 {
		return avg, ok
	}
	if window < 1 {
		window = 1
	}
	half := window / 2

	sum := make([]float64, n+1)
	count := make([]int, n+1)
	for i, v := range values {
		sum[i+1] = sum[i]
		count[i+1] = count[i]
		if !math.IsNaN(v) {
			sum[i+1] += v
			count[i+1]++
		}
	}

	for i := range values {
		lo := max(i-half, 0)
		hi := min(i+half, n-1)
		c := count[hi+1] - count[lo]
		if c == 0 {
			continue
		}
		avg[i] = (sum[hi+1] - sum[lo]) / float64(c)
		ok[i] = true
	}
	return avg, ok
}
