package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSeries = errors.New("analysis: series too short")

// hann returns a copy of data with its mean removed and a Hann window applied.
func hann(data []float64) []float64 {
	n := len(data)
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	out := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		out[i] = (v - mean) * w
	}
	return out
}

// PowerSpectrum is the magnitude of the first n/2 bins of the windowed,
// mean-removed series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 4 {
		return nil
	}
	spectrum := fft.FFTReal(hann(data))
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency is the frequency in Hz of the strongest non-DC bin of a
// series sampled at sampleRate, refined by parabolic interpolation.
func DominantFrequency(data []float64, sampleRate float64) (float64, error) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || sampleRate <= 0 {
		return 0, ErrShortSeries
	}

	k := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[k] {
			k = i
		}
	}
	if ps[k] == 0 {
		return 0, nil
	}

	bin := float64(k)
	if k > 1 && k < len(ps)-1 {
		a, b, c := ps[k-1], ps[k], ps[k+1]
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}
	return bin * sampleRate / float64(len(data)), nil
}

// DecayRate fits ln|peak| = ln A - rate*t through the local maxima of |x|
// and returns rate in 1/s. A series without two peaks yields ErrShortSeries.
func DecayRate(data []float64, sampleRate float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, ErrShortSeries
	}
	var ts, ls []float64
	for i := 1; i < len(data)-1; i++ {
		a, b, c := math.Abs(data[i-1]), math.Abs(data[i]), math.Abs(data[i+1])
		if b > a && b >= c && b > 0 {
			ts = append(ts, float64(i)/sampleRate)
			ls = append(ls, math.Log(b))
		}
	}
	if len(ts) < 2 {
		return 0, ErrShortSeries
	}

	n := float64(len(ts))
	var st, sl, stt, stl float64
	for i := range ts {
		st += ts[i]
		sl += ls[i]
		stt += ts[i] * ts[i]
		stl += ts[i] * ls[i]
	}
	den := n*stt - st*st
	if den == 0 {
		return 0, ErrShortSeries
	}
	return -(n*stl - st*sl) / den, nil
}
