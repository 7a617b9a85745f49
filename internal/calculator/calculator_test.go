package calculator

import (
	"math"
	"testing"

	"TrendSentry/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEMA_Recurrence(t *testing.T) {
	// span 3 -> k = 0.5
	values := []float64{1, 2, 3}
	ema := EMA(values, 3)
	if !almostEqual(ema[0], 1) {
		t.Errorf("ema[0]: expected 1, got %f", ema[0])
	}
	if !almostEqual(ema[1], 1.5) {
		t.Errorf("ema[1]: expected 1.5, got %f", ema[1])
	}
	if !almostEqual(ema[2], 2.25) {
		t.Errorf("ema[2]: expected 2.25, got %f", ema[2])
	}
}

func TestEMA_ConstantSeries(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = 42
	}
	ema := EMA(values, 12)
	for i, v := range ema {
		if !almostEqual(v, 42) {
			t.Fatalf("ema[%d]: expected 42, got %f", i, v)
		}
	}
}

func TestEMA_NaNHandling(t *testing.T) {
	values := []float64{math.NaN(), 10, math.NaN(), 20}
	ema := EMA(values, 3)
	if !math.IsNaN(ema[0]) {
		t.Errorf("leading NaN should stay NaN, got %f", ema[0])
	}
	if !almostEqual(ema[1], 10) {
		t.Errorf("first valid value should seed the recurrence, got %f", ema[1])
	}
	if !almostEqual(ema[2], 10) {
		t.Errorf("mid-series NaN should carry the previous EMA, got %f", ema[2])
	}
	if !almostEqual(ema[3], 15) {
		t.Errorf("ema[3]: expected 15, got %f", ema[3])
	}
}

func TestMACD_ConstantSeriesIsZero(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}
	dif, dea, hist := MACD(closes, DefaultFast, DefaultSlow, DefaultSignal)
	last := len(closes) - 1
	if !almostEqual(dif[last], 0) || !almostEqual(dea[last], 0) || !almostEqual(hist[last], 0) {
		t.Errorf("constant series: expected zero MACD, got dif=%f dea=%f hist=%f",
			dif[last], dea[last], hist[last])
	}
}

func TestMACD_HistogramDoubling(t *testing.T) {
	closes := make([]float64, 60)
	c := 100.0
	for i := range closes {
		closes[i] = c
		c *= 1.01
	}
	dif, dea, hist := MACD(closes, DefaultFast, DefaultSlow, DefaultSignal)
	for i := range closes {
		want := 2 * (dif[i] - dea[i])
		if !almostEqual(hist[i], want) {
			t.Fatalf("hist[%d]: expected %f, got %f", i, want, hist[i])
		}
	}
	// Rising series: fast EMA leads the slow one.
	last := len(closes) - 1
	if dif[last] <= dea[last] {
		t.Errorf("rising series: expected DIF above DEA, got dif=%f dea=%f", dif[last], dea[last])
	}
}

func TestSMA_WindowAndNaN(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	sma := SMA(values, 3)
	if !math.IsNaN(sma[0]) || !math.IsNaN(sma[1]) {
		t.Error("entries before the window fills should be NaN")
	}
	if !almostEqual(sma[2], 2) || !almostEqual(sma[3], 3) {
		t.Errorf("expected [_, _, 2, 3], got %v", sma)
	}

	withHole := []float64{1, math.NaN(), 3, 4, 5}
	sma2 := SMA(withHole, 3)
	if !math.IsNaN(sma2[2]) || !math.IsNaN(sma2[3]) {
		t.Error("windows containing a NaN should yield NaN")
	}
	if !almostEqual(sma2[4], 4) {
		t.Errorf("sma2[4]: expected 4, got %f", sma2[4])
	}
}

func TestSMA_ShortInput(t *testing.T) {
	sma := SMA([]float64{1, 2}, 5)
	for i, v := range sma {
		if !math.IsNaN(v) {
			t.Errorf("sma[%d]: expected NaN for short input, got %f", i, v)
		}
	}
}

func TestMaxValid(t *testing.T) {
	if _, ok := MaxValid([]float64{math.NaN(), math.NaN()}); ok {
		t.Error("all-NaN input should report no valid entries")
	}
	max, ok := MaxValid([]float64{math.NaN(), 3, 7, math.NaN(), 5})
	if !ok || !almostEqual(max, 7) {
		t.Errorf("expected max 7, got %f (ok=%t)", max, ok)
	}
}

func TestVolatilityPct(t *testing.T) {
	v, err := VolatilityPct([]float64{100, 110, 90})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (110.0 - 90.0) / 90.0 * 100
	if !almostEqual(v, want) {
		t.Errorf("expected %f, got %f", want, v)
	}

	if _, err := VolatilityPct(nil); err == nil {
		t.Error("expected error for empty window")
	}
	if _, err := VolatilityPct([]float64{100, math.NaN()}); err == nil {
		t.Error("expected error for NaN in window")
	}
	if _, err := VolatilityPct([]float64{0, 10}); err == nil {
		t.Error("expected error for non-positive minimum")
	}
}

func TestVolumeTrend(t *testing.T) {
	bars := []model.OHLCV{
		{Close: 10, Volume: 50},
		{Close: 11, Volume: 100}, // up, volume increased
		{Close: 10, Volume: 80},  // down, volume decreased
		{Close: 12, Volume: 60},  // up, volume decreased
	}
	vt := VolumeTrend(bars)
	if vt.UpBars != 2 || vt.DownBars != 1 {
		t.Errorf("expected 2 up / 1 down, got %d / %d", vt.UpBars, vt.DownBars)
	}
	if !almostEqual(vt.UpVolumeTotal, 160) || !almostEqual(vt.DownVolumeTotal, 80) {
		t.Errorf("expected volumes 160/80, got %f/%f", vt.UpVolumeTotal, vt.DownVolumeTotal)
	}
	if !almostEqual(vt.VolumeRatio, 2) {
		t.Errorf("expected ratio 2, got %f", vt.VolumeRatio)
	}
	if !almostEqual(vt.UpWithVolumeIncreasePct, 50) {
		t.Errorf("expected 50%% of up bars with rising volume, got %f", vt.UpWithVolumeIncreasePct)
	}
	if !vt.PositiveSignal {
		t.Error("expected positive signal when up volume dominates")
	}
}

func TestVolumeTrend_SkipsMissingBars(t *testing.T) {
	nan := math.NaN()
	bars := []model.OHLCV{
		{Close: 10, Volume: 50},
		{Close: 11, Volume: 100},  // up
		{Close: nan, Volume: 80},  // missing close: skipped
		{Close: 12, Volume: 60},   // prior close missing: skipped
		{Close: 11, Volume: nan},  // missing volume: skipped
		{Close: 10, Volume: 70},   // down
		{Close: 10.5, Volume: 90}, // up
	}
	vt := VolumeTrend(bars)
	if vt.UpBars != 2 || vt.DownBars != 1 {
		t.Errorf("expected 2 up / 1 down after skipping holes, got %d / %d", vt.UpBars, vt.DownBars)
	}
	if !almostEqual(vt.UpVolumeTotal, 190) || !almostEqual(vt.DownVolumeTotal, 70) {
		t.Errorf("expected finite volumes 190/70, got %f/%f", vt.UpVolumeTotal, vt.DownVolumeTotal)
	}
	if math.IsNaN(vt.VolumeRatio) {
		t.Error("volume ratio must stay finite with holes in the series")
	}
}

func TestVolumeTrend_FirstBarExcluded(t *testing.T) {
	vt := VolumeTrend([]model.OHLCV{{Close: 10, Volume: 100}})
	if vt.UpBars != 0 || vt.DownBars != 0 {
		t.Errorf("single bar has no prior close, got %d up / %d down", vt.UpBars, vt.DownBars)
	}
	if vt.PositiveSignal {
		t.Error("no classified bars should never be a positive signal")
	}
}
