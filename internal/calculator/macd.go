package calculator

import "math"

// Default MACD spans.
const (
	DefaultFast   = 12
	DefaultSlow   = 26
	DefaultSignal = 9
)

// EMA computes the exponential moving average with the adjust=False
// recurrence: ema[0] = v[0], ema[i] = v[i]*k + ema[i-1]*(1-k), k = 2/(span+1).
// The seed is the first value itself, not an SMA of the initial window;
// changing the seeding shifts every downstream crossover. Leading NaNs stay
// NaN until the first valid value seeds the recurrence; a NaN mid-series
// carries the previous EMA forward.
func EMA(values []float64, span int) []float64 {
	out := nanSlice(len(values))
	if span <= 0 {
		return out
	}
	k := 2.0 / float64(span+1)
	prev := math.NaN()
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = prev
		case math.IsNaN(prev):
			prev = v
			out[i] = v
		default:
			prev = v*k + prev*(1-k)
			out[i] = prev
		}
	}
	return out
}

// MACD returns the DIF, DEA and histogram sequences for the given closes.
// DIF = EMA(fast) - EMA(slow); DEA = EMA(DIF, signal); hist = 2*(DIF-DEA).
func MACD(closes []float64, fast, slow, signal int) (dif, dea, hist []float64) {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)
	dif = make([]float64, len(closes))
	for i := range closes {
		dif[i] = emaFast[i] - emaSlow[i]
	}
	dea = EMA(dif, signal)
	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = 2 * (dif[i] - dea[i])
	}
	return dif, dea, hist
}
