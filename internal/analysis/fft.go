package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// spectrumOversample zero-pads signals so the frequency grid is finer than
// the record length alone would give.
const spectrumOversample = 8

// PowerSpectrum returns the magnitudes of the first half of the spectrum of
// data. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantPeriod returns the period of the strongest non-constant component
// of samples taken every interval, or 0 when there is none.
func DominantPeriod(samples []float64, interval float64) float64 {
	if len(samples) < 4 || interval <= 0 {
		return 0
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	padded := make([]float64, nextPow2(len(samples)*spectrumOversample))
	for i, v := range samples {
		padded[i] = v - mean
	}

	ps := PowerSpectrum(padded)
	best, bestK := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bestK = ps[k], k
		}
	}
	if bestK == 0 || best < 1e-12 {
		return 0
	}
	return float64(len(padded)) * interval / float64(bestK)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
