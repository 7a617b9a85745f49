package calculator

import (
	"errors"
	"math"

	"TrendSentry/internal/model"
)

// VolatilityPct returns (max-min)/min*100 over the given closes.
// Undefined when the window is empty, contains a NaN, or min <= 0.
func VolatilityPct(closes []float64) (float64, error) {
	if len(closes) == 0 {
		return 0, errors.New("no closes provided")
	}
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, c := range closes {
		if math.IsNaN(c) {
			return 0, errors.New("missing close in window")
		}
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	if min <= 0 {
		return 0, errors.New("non-positive minimum close")
	}
	return (max - min) / min * 100, nil
}

// VolumeTrend classifies each bar as up or down by the sign of the close
// change against the prior bar and aggregates volume per side. The first bar
// has no prior close and is excluded from both populations, as is any bar
// whose close, prior close, or volume is missing.
func VolumeTrend(bars []model.OHLCV) model.VolumeTrend {
	var vt model.VolumeTrend
	upInc, downDec := 0, 0
	for i := 1; i < len(bars); i++ {
		if math.IsNaN(bars[i].Close) || math.IsNaN(bars[i-1].Close) || math.IsNaN(bars[i].Volume) {
			continue
		}
		priceChange := bars[i].Close - bars[i-1].Close
		volumeChange := bars[i].Volume - bars[i-1].Volume
		if priceChange > 0 {
			vt.UpBars++
			vt.UpVolumeTotal += bars[i].Volume
			if volumeChange > 0 {
				upInc++
			}
		} else {
			vt.DownBars++
			vt.DownVolumeTotal += bars[i].Volume
			if volumeChange < 0 {
				downDec++
			}
		}
	}
	if vt.UpBars > 0 {
		vt.UpWithVolumeIncreasePct = float64(upInc) / float64(vt.UpBars) * 100
	}
	if vt.DownBars > 0 {
		vt.DownWithVolumeDecreasePct = float64(downDec) / float64(vt.DownBars) * 100
	}
	if vt.DownVolumeTotal > 0 {
		vt.VolumeRatio = vt.UpVolumeTotal / vt.DownVolumeTotal
	}
	vt.PositiveSignal = vt.UpVolumeTotal > 0 && vt.DownVolumeTotal > 0 &&
		vt.UpVolumeTotal > vt.DownVolumeTotal
	return vt
}
