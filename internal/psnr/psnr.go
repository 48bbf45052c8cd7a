// Package psnr computes Peak Signal-to-Noise Ratio between two decoded PCM
// sample sets, for quality reporting and tests.
package psnr

import (
	"math"

	"mp3stego/internal/stegoerr"
)

// maxSignalValue is the peak value of a normalized float PCM sample.
const maxSignalValue = 1.0

// Compute returns PSNR in dB between two mono, float-normalized ([-1,1])
// PCM sample sets decoded at the same sample rate. Samples are aligned to
// min(len(a), len(b)). PSNR is +Inf when the signals are identical.
func Compute(a, b []float64, sampleRateA, sampleRateB int) (float64, error) {
	if sampleRateA != sampleRateB {
		return 0, stegoerr.ErrPsnrSampleRateMismatch
	}
	n := min(len(a), len(b))
	if n == 0 {
		return 0, stegoerr.ErrPsnrEmpty
	}

	var mse float64
	for i := 0; i < n; i++ {
		diff := a[i] - b[i]
		mse += diff * diff
	}
	mse /= float64(n)

	if mse == 0 {
		return math.Inf(1), nil
	}

	return 10 * math.Log10((maxSignalValue*maxSignalValue)/mse), nil
}
