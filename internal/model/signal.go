package model

import "time"

// RuleVerdict is the boolean outcome of one checklist rule.
type RuleVerdict struct {
	ID     string
	Name   string
	Passed bool
}

// AnalysisResult is the full outcome of evaluating the weekly buy checklist
// for one symbol. It is created once per evaluation and never mutated.
type AnalysisResult struct {
	Symbol    string
	Market    Market
	Snapshot  IndicatorSnapshot
	Verdicts  []RuleVerdict
	PassCount int
	// Actionable means PassCount met the configured buy threshold.
	Actionable bool
	ScanOrder  int
}

// Verdict looks up a rule outcome by id.
func (r *AnalysisResult) Verdict(id string) (RuleVerdict, bool) {
	for _, v := range r.Verdicts {
		if v.ID == id {
			return v, true
		}
	}
	return RuleVerdict{}, false
}

// IndexSignal is the outcome of the two-rule index-fund check. Buy demands
// both rules; Sell on a held position fires when either fails. Entry is
// stricter than exit on purpose.
type IndexSignal struct {
	Symbol       string
	Market       Market
	CurrentPrice float64

	MonthlyMA10     float64
	PrevMonthlyMA10 float64
	WeeklyMA10      float64
	WeeklyMA20      float64

	MonthlyTrendUp    bool // rule A
	WeeklyGoldenCross bool // rule B
	Buy               bool
	Sell              bool

	MonthlyVolume VolumeTrend

	// Holding fields, populated for sell checks only.
	Position     *Position
	HoldingDays  int
	ChangePct    float64
	ProfitAmount float64
}

// StopLossCheck is one lot's stop-loss computation. Lots of the same symbol
// are never pooled; each derives its threshold from its own purchase price.
type StopLossCheck struct {
	Position     Position
	Market       Market
	CurrentPrice float64
	DropPct      float64
	ThresholdPct float64
	LossAmount   float64 // only meaningful when the lot carries a quantity
	Triggered    bool
}

// SellSignal is the outcome of the MACD death-cross sell check. CrossFound
// distinguishes "no crossing in the series" from "found but not triggered".
type SellSignal struct {
	Symbol       string
	Market       Market
	CurrentPrice float64

	CrossFound     bool
	CrossDate      time.Time
	CrossLow       float64
	DropFromLowPct float64

	ShouldSell bool
	Reason     string
}
