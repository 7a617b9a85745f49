package strategy

import (
	"errors"
	"testing"
	"time"

	"TrendSentry/internal/model"
)

func weeklySeries(closes, volumes []float64) *model.Series {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.Add(time.Duration(i) * 7 * 24 * time.Hour),
			Open:   c * 0.99,
			High:   c * 1.01,
			Low:    c * 0.98,
			Close:  c,
			Volume: volumes[i],
		}
	}
	return &model.Series{
		Symbol:   "TEST",
		Market:   model.MarketUS,
		Interval: model.IntervalWeekly,
		Bars:     bars,
	}
}

// risingCloses builds a 1% per week uptrend with a breakout final week.
func risingCloses(n int) ([]float64, []float64) {
	closes := make([]float64, n)
	volumes := make([]float64, n)
	c := 100.0
	for i := 0; i < n-1; i++ {
		closes[i] = c
		c *= 1.01
	}
	closes[n-1] = closes[n-2] * 1.06
	for i := range volumes {
		volumes[i] = 1000 + float64(i)*10
	}
	return closes, volumes
}

func TestEvaluateBuyChecklist_Uptrend(t *testing.T) {
	closes, volumes := risingCloses(40)
	eval := NewEvaluator(6, 7.0)
	res, err := eval.EvaluateBuyChecklist(weeklySeries(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Verdicts) != BuyRuleCount {
		t.Fatalf("expected %d verdicts, got %d", BuyRuleCount, len(res.Verdicts))
	}

	wantPassed := map[string]bool{
		"rule_1":  true,  // MA10 > MA20
		"rule_2":  true,  // close > MA20
		"rule_3":  true,  // close > MA30
		"rule_4":  true,  // MA30 rising
		"rule_5":  true,  // tight 6-week range
		"rule_6":  false, // no down weeks to measure
		"rule_7":  true,  // 6% weekly gain
		"rule_8":  true,  // volume above prior week
		"rule_9":  true,  // DIF above DEA
		"rule_10": true,  // 10-week high
	}
	for id, want := range wantPassed {
		v, ok := res.Verdict(id)
		if !ok {
			t.Fatalf("missing verdict %s", id)
		}
		if v.Passed != want {
			t.Errorf("%s (%s): expected %t, got %t", id, v.Name, want, v.Passed)
		}
	}
	if res.PassCount != 9 {
		t.Errorf("expected 9 passes, got %d", res.PassCount)
	}
	if !res.Actionable {
		t.Error("9 of 10 passes should clear a threshold of 6")
	}
}

func TestEvaluateBuyChecklist_StrictThreshold(t *testing.T) {
	closes, volumes := risingCloses(40)
	eval := NewEvaluator(10, 7.0)
	res, err := eval.EvaluateBuyChecklist(weeklySeries(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Actionable {
		t.Errorf("9 of 10 passes must not clear a threshold of 10 (pass count %d)", res.PassCount)
	}
}

func TestEvaluateBuyChecklist_Downtrend(t *testing.T) {
	closes := make([]float64, 40)
	volumes := make([]float64, 40)
	c := 200.0
	for i := range closes {
		closes[i] = c
		c *= 0.99
		volumes[i] = 1000
	}
	eval := NewEvaluator(6, 7.0)
	res, err := eval.EvaluateBuyChecklist(weeklySeries(closes, volumes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{"rule_1", "rule_2", "rule_3", "rule_4", "rule_7", "rule_8", "rule_9", "rule_10"} {
		if v, _ := res.Verdict(id); v.Passed {
			t.Errorf("%s should fail in a steady downtrend", id)
		}
	}
	if res.Actionable {
		t.Errorf("downtrend must not be actionable (pass count %d)", res.PassCount)
	}
}

func TestEvaluateBuyChecklist_InsufficientData(t *testing.T) {
	closes, volumes := risingCloses(RequiredWeeklyBars - 1)
	eval := NewEvaluator(6, 7.0)
	res, err := eval.EvaluateBuyChecklist(weeklySeries(closes, volumes))
	if err == nil {
		t.Fatal("expected error for short series")
	}
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	if res != nil {
		t.Error("short series must not produce a partial result")
	}
}

func TestEvaluateBuyChecklist_Deterministic(t *testing.T) {
	closes, volumes := risingCloses(40)
	series := weeklySeries(closes, volumes)
	eval := NewEvaluator(6, 7.0)

	first, err := eval.EvaluateBuyChecklist(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := eval.EvaluateBuyChecklist(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.PassCount != second.PassCount {
		t.Fatalf("pass count changed between runs: %d vs %d", first.PassCount, second.PassCount)
	}
	for i := range first.Verdicts {
		if first.Verdicts[i].Passed != second.Verdicts[i].Passed {
			t.Errorf("verdict %s changed between runs", first.Verdicts[i].ID)
		}
	}
}

func TestRule6_GatedByConsolidation(t *testing.T) {
	// A final 6-week stretch with a >20% range fails rule 5, which must
	// force rule 6 false even with down weeks on shrinking volume.
	closes := make([]float64, 40)
	volumes := make([]float64, 40)
	for i := 0; i < 34; i++ {
		closes[i] = 100
		volumes[i] = 1000
	}
	swing := []float64{100, 130, 95, 125, 90, 120}
	for i, c := range swing {
		closes[34+i] = c
		volumes[34+i] = 1000 - float64(i)*100
	}
	series := weeklySeries(closes, volumes)
	// Force the swing weeks that closed lower to open above their close.
	for i := 34; i < 40; i++ {
		series.Bars[i].Open = closes[i] * 1.20
	}

	eval := NewEvaluator(6, 7.0)
	res, err := eval.EvaluateBuyChecklist(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := res.Verdict("rule_5"); v.Passed {
		t.Error("a 40%+ range should fail the consolidation rule")
	}
	if v, _ := res.Verdict("rule_6"); v.Passed {
		t.Error("volume rule must be false outside a consolidation")
	}
}

func TestDownVolumeShrinking(t *testing.T) {
	mk := func(open, close, volume float64) model.OHLCV {
		return model.OHLCV{Open: open, Close: close, Volume: volume}
	}
	// Four down weeks, later half on lighter volume.
	shrinking := []model.OHLCV{
		mk(10, 9, 100), mk(10, 9, 90), mk(10, 11, 500), mk(10, 9, 50), mk(10, 9, 40),
	}
	if !downVolumeShrinking(shrinking) {
		t.Error("expected shrinking down-week volume to pass")
	}
	// Later half heavier.
	growing := []model.OHLCV{
		mk(10, 9, 40), mk(10, 9, 50), mk(10, 9, 90), mk(10, 9, 100),
	}
	if downVolumeShrinking(growing) {
		t.Error("expected growing down-week volume to fail")
	}
	// One down week: nothing to compare.
	single := []model.OHLCV{mk(10, 9, 100), mk(10, 11, 100)}
	if downVolumeShrinking(single) {
		t.Error("fewer than two down weeks must be false")
	}
}
