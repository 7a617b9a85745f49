package strategy

import (
	"fmt"
	"math"

	"TrendSentry/internal/calculator"
	"TrendSentry/internal/model"
)

// RequiredWeeklyBars is the minimum weekly history for the buy checklist;
// the 30-week MA needs a full window.
const RequiredWeeklyBars = 30

// BuyRuleCount is the canonical checklist size.
const BuyRuleCount = 10

// buyRuleNames maps rule ids to the wording used in reports.
var buyRuleNames = [BuyRuleCount]string{
	"10-week MA above 20-week MA",
	"close above 20-week MA",
	"close above 30-week MA",
	"30-week MA trending up",
	"consolidating over 6 weeks (range under 20%)",
	"down-week volume shrinking during consolidation",
	"weekly close up at least 5% on the prior week",
	"volume above the prior week",
	"MACD DIF above DEA",
	"close at a 10-week high",
}

// Evaluator applies the rule checklists. Thresholds are injected so the
// single-stock and batch-scan variants share one implementation.
type Evaluator struct {
	BuyThreshold int
	StopLossPct  float64
}

// NewEvaluator builds an Evaluator with the given decision thresholds.
func NewEvaluator(buyThreshold int, stopLossPct float64) *Evaluator {
	return &Evaluator{BuyThreshold: buyThreshold, StopLossPct: stopLossPct}
}

// EvaluateBuyChecklist runs the ten-point weekly buy checklist over a weekly
// series. A series shorter than RequiredWeeklyBars fails with
// ErrInsufficientData rather than returning a partial verdict set. An
// undefined indicator makes the dependent rule false, never panics.
func (e *Evaluator) EvaluateBuyChecklist(series *model.Series) (*model.AnalysisResult, error) {
	n := series.Len()
	if n < RequiredWeeklyBars {
		return nil, fmt.Errorf("%w: need %d weekly bars, have %d", ErrInsufficientData, RequiredWeeklyBars, n)
	}

	closes := series.Closes()
	ma10 := calculator.SMA(closes, 10)
	ma20 := calculator.SMA(closes, 20)
	ma30 := calculator.SMA(closes, 30)
	dif, dea, _ := calculator.MACD(closes, calculator.DefaultFast, calculator.DefaultSlow, calculator.DefaultSignal)

	latest := series.Bars[n-1]
	prev := series.Bars[n-2]

	snap := model.IndicatorSnapshot{
		Close:      latest.Close,
		PrevClose:  prev.Close,
		MA10:       calculator.At(ma10, n-1),
		MA20:       calculator.At(ma20, n-1),
		MA30:       calculator.At(ma30, n-1),
		PrevMA30:   calculator.At(ma30, n-2),
		MACDDIF:    calculator.At(dif, n-1),
		MACDDEA:    calculator.At(dea, n-1),
		Volume:     latest.Volume,
		PrevVolume: prev.Volume,
	}

	rules := [BuyRuleCount]bool{}
	rules[0] = definedGreater(snap.MA10, snap.MA20)
	rules[1] = definedGreater(snap.Close, snap.MA20)
	rules[2] = definedGreater(snap.Close, snap.MA30)
	rules[3] = definedGreater(snap.MA30, snap.PrevMA30)

	// Rule 5: flat base over the trailing 6 weeks.
	last6 := series.Tail(6)
	if vol, err := calculator.VolatilityPct(closesOf(last6)); err == nil {
		rules[4] = vol < 20
	}

	// Rule 6 only means anything inside a consolidation; rule 5 false
	// short-circuits it to false.
	if rules[4] {
		rules[5] = downVolumeShrinking(last6)
	}

	if model.Defined(snap.Close) && model.Defined(snap.PrevClose) && snap.PrevClose > 0 {
		rules[6] = (snap.Close-snap.PrevClose)/snap.PrevClose*100 >= 5
	}
	rules[7] = definedGreater(snap.Volume, snap.PrevVolume)
	rules[8] = definedGreater(snap.MACDDIF, snap.MACDDEA)

	if max10, ok := calculator.MaxValid(closesOf(series.Tail(10))); ok && model.Defined(snap.Close) {
		rules[9] = snap.Close >= max10
	}

	result := &model.AnalysisResult{
		Symbol:   series.Market.DisplaySymbol(series.Symbol),
		Market:   series.Market,
		Snapshot: snap,
		Verdicts: make([]model.RuleVerdict, 0, BuyRuleCount),
	}
	for i, passed := range rules {
		result.Verdicts = append(result.Verdicts, model.RuleVerdict{
			ID:     fmt.Sprintf("rule_%d", i+1),
			Name:   buyRuleNames[i],
			Passed: passed,
		})
		if passed {
			result.PassCount++
		}
	}
	result.Actionable = result.PassCount >= e.BuyThreshold
	return result, nil
}

// downVolumeShrinking splits the down bars (close below open) of the window
// chronologically in half and compares mean volumes. Fewer than two down
// bars is false: no trend to measure.
func downVolumeShrinking(bars []model.OHLCV) bool {
	var downVolumes []float64
	for _, b := range bars {
		if b.Close < b.Open {
			downVolumes = append(downVolumes, b.Volume)
		}
	}
	if len(downVolumes) < 2 {
		return false
	}
	mid := len(downVolumes) / 2
	earlyAvg := mean(downVolumes[:mid])
	lateAvg := mean(downVolumes[mid:])
	return earlyAvg > 0 && lateAvg < earlyAvg
}

func definedGreater(a, b float64) bool {
	return model.Defined(a) && model.Defined(b) && a > b
}

func closesOf(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
