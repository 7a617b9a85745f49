package model

import "math"

// IndicatorSnapshot holds the latest and previous indicator values derived
// from one weekly series. Absent values are NaN, never zero: a zero close
// is data, a NaN close is a hole.
type IndicatorSnapshot struct {
	Close      float64
	PrevClose  float64
	MA10       float64
	MA20       float64
	MA30       float64
	PrevMA30   float64
	MACDDIF    float64
	MACDDEA    float64
	Volume     float64
	PrevVolume float64
}

// Defined reports whether v carries a computed value.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// VolumeTrend summarizes volume behavior of up vs down bars over a window.
// The first bar of the window has no prior close to classify against and is
// excluded.
type VolumeTrend struct {
	UpBars                    int
	DownBars                  int
	UpVolumeTotal             float64
	DownVolumeTotal           float64
	VolumeRatio               float64 // up total / down total, 0 when no down volume
	UpWithVolumeIncreasePct   float64
	DownWithVolumeDecreasePct float64
	// PositiveSignal is only asserted when both populations carry volume;
	// a ratio over an empty side proves nothing.
	PositiveSignal bool
}
