package report

import (
	"fmt"
	"strings"
	"time"

	"TrendSentry/internal/model"
)

func mark(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}

// FormatChecklist renders one symbol's buy-checklist outcome as a plain-text
// block. The raw indicator values come first so the numbers can be checked
// against the source data.
func FormatChecklist(r *model.AnalysisResult) string {
	cur := r.Market.CurrencySymbol()
	snap := r.Snapshot

	var b strings.Builder
	b.WriteString("==========================================\n")
	fmt.Fprintf(&b, "Symbol: %s (%s market)\n", r.Symbol, r.Market.Name())
	fmt.Fprintf(&b, "Current price: %s%.2f\n\n", cur, snap.Close)

	b.WriteString("Indicators:\n")
	fmt.Fprintf(&b, "- weekly MA10: %s%.2f\n", cur, snap.MA10)
	fmt.Fprintf(&b, "- weekly MA20: %s%.2f\n", cur, snap.MA20)
	fmt.Fprintf(&b, "- weekly MA30: %s%.2f\n", cur, snap.MA30)
	fmt.Fprintf(&b, "- MACD DIF: %.4f\n", snap.MACDDIF)
	fmt.Fprintf(&b, "- MACD DEA: %.4f\n", snap.MACDDEA)
	fmt.Fprintf(&b, "- prior weekly close: %s%.2f\n", cur, snap.PrevClose)
	fmt.Fprintf(&b, "- current week volume: %.0f\n", snap.Volume)
	fmt.Fprintf(&b, "- prior week volume: %.0f\n\n", snap.PrevVolume)

	b.WriteString("Checklist verdicts:\n")
	for i, v := range r.Verdicts {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, v.Name, mark(v.Passed))
	}
	fmt.Fprintf(&b, "\nRules passed: %d/%d\n", r.PassCount, len(r.Verdicts))
	b.WriteString("==========================================\n")
	return b.String()
}

// FormatScanSummary renders the ranked batch report. Only the top-N
// actionable symbols get a detailed block; totals stay accurate.
func FormatScanSummary(rep *RankedReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scan report | %s\n\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&b, "Symbols evaluated: %d\n", len(rep.Results))
	fmt.Fprintf(&b, "Actionable (>= %d rules): %d\n", rep.Threshold, rep.ActionableTotal)
	fmt.Fprintf(&b, "Below threshold: %d\n", rep.NotActionableTotal())
	if len(rep.Failed) > 0 {
		fmt.Fprintf(&b, "Failed: %d (%s)\n", len(rep.Failed), strings.Join(rep.Failed, ", "))
	}
	if rep.ActionableTotal > rep.TopN {
		fmt.Fprintf(&b, "\nShowing the top %d of %d actionable symbols by rules passed:\n", rep.TopN, rep.ActionableTotal)
	}
	b.WriteString("\n")
	for _, r := range rep.Actionable {
		b.WriteString(FormatChecklist(r))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatIndexSignal renders one index-fund check, including the monthly
// volume confirmation.
func FormatIndexSignal(sig *model.IndexSignal) string {
	cur := sig.Market.CurrencySymbol()
	var b strings.Builder
	b.WriteString("==========================================\n")
	fmt.Fprintf(&b, "Symbol: %s (%s market)\n", sig.Symbol, sig.Market.Name())
	fmt.Fprintf(&b, "Current price: %s%.2f\n\n", cur, sig.CurrentPrice)

	b.WriteString("Monthly trend:\n")
	fmt.Fprintf(&b, "- monthly MA10 now: %s%.2f\n", cur, sig.MonthlyMA10)
	fmt.Fprintf(&b, "- monthly MA10 prior month: %s%.2f\n", cur, sig.PrevMonthlyMA10)
	fmt.Fprintf(&b, "- rule A (monthly MA10 rising): %s\n\n", mark(sig.MonthlyTrendUp))

	b.WriteString("Weekly cross:\n")
	fmt.Fprintf(&b, "- weekly MA10: %s%.2f\n", cur, sig.WeeklyMA10)
	fmt.Fprintf(&b, "- weekly MA20: %s%.2f\n", cur, sig.WeeklyMA20)
	fmt.Fprintf(&b, "- rule B (MA10 above MA20): %s\n\n", mark(sig.WeeklyGoldenCross))

	vt := sig.MonthlyVolume
	b.WriteString("Volume over the last 10 months:\n")
	fmt.Fprintf(&b, "- up months: %d, down months: %d\n", vt.UpBars, vt.DownBars)
	fmt.Fprintf(&b, "- up volume total: %.0f, down volume total: %.0f\n", vt.UpVolumeTotal, vt.DownVolumeTotal)
	fmt.Fprintf(&b, "- volume ratio (up/down): %.2f\n", vt.VolumeRatio)
	fmt.Fprintf(&b, "- up months with rising volume: %.1f%%\n", vt.UpWithVolumeIncreasePct)
	fmt.Fprintf(&b, "- down months with shrinking volume: %.1f%%\n", vt.DownWithVolumeDecreasePct)
	if vt.PositiveSignal {
		b.WriteString("- volume confirmation: positive (up volume outweighs down volume)\n")
	} else {
		b.WriteString("- volume confirmation: neutral\n")
	}

	if sig.Position != nil {
		b.WriteString("\nHolding:\n")
		fmt.Fprintf(&b, "- purchased %s at %s%.2f\n", sig.Position.PurchaseDate, cur, sig.Position.PurchasePrice)
		if sig.HoldingDays >= 0 {
			fmt.Fprintf(&b, "- held for %d days\n", sig.HoldingDays)
		}
		fmt.Fprintf(&b, "- change since purchase: %+.2f%%\n", sig.ChangePct)
		if sig.Position.Quantity > 0 {
			fmt.Fprintf(&b, "- position P/L: %s%.2f\n", cur, sig.ProfitAmount)
		}
		if sig.Sell {
			b.WriteString("\nSell signal: TRIGGERED (at least one rule failed)\n")
		} else {
			b.WriteString("\nSell signal: not triggered (both rules still hold)\n")
		}
	} else {
		if sig.Buy {
			b.WriteString("\nBuy signal: TRIGGERED (both rules hold)\n")
		} else {
			b.WriteString("\nBuy signal: not triggered (entry needs both rules)\n")
		}
	}
	b.WriteString("==========================================\n")
	return b.String()
}

// FormatStopLoss renders the per-lot stop-loss checks.
func FormatStopLoss(checks []model.StopLossCheck) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stop-loss report | %s\n\n", time.Now().Format("2006-01-02"))
	for _, c := range checks {
		cur := c.Market.CurrencySymbol()
		b.WriteString("==========================================\n")
		fmt.Fprintf(&b, "Symbol: %s (%s market)\n", c.Market.DisplaySymbol(c.Position.Symbol), c.Market.Name())
		fmt.Fprintf(&b, "Purchased: %s at %s%.2f\n", c.Position.PurchaseDate, cur, c.Position.PurchasePrice)
		if c.Position.Quantity > 0 {
			fmt.Fprintf(&b, "Quantity: %.0f shares\n", c.Position.Quantity)
		}
		fmt.Fprintf(&b, "Current price: %s%.2f\n", cur, c.CurrentPrice)
		fmt.Fprintf(&b, "Drop from purchase: %.2f%%\n", c.DropPct)
		if c.Position.Quantity > 0 {
			fmt.Fprintf(&b, "Unrealized loss: %s%.2f\n", cur, c.LossAmount)
		}
		if c.Triggered {
			fmt.Fprintf(&b, "Stop-loss: TRIGGERED (drop >= %.1f%%); sell this lot\n", c.ThresholdPct)
		} else {
			fmt.Fprintf(&b, "Stop-loss: not triggered (drop < %.1f%%); this lot can be held\n", c.ThresholdPct)
		}
		b.WriteString("==========================================\n\n")
	}
	return b.String()
}

// FormatSellSignal renders one death-cross sell check.
func FormatSellSignal(sig *model.SellSignal) string {
	cur := sig.Market.CurrencySymbol()
	var b strings.Builder
	b.WriteString("==========================================\n")
	fmt.Fprintf(&b, "Symbol: %s (%s market)\n", sig.Symbol, sig.Market.Name())
	fmt.Fprintf(&b, "Current price: %s%.2f\n\n", cur, sig.CurrentPrice)
	if !sig.CrossFound {
		b.WriteString("Death cross: none found in the series\n")
	} else {
		fmt.Fprintf(&b, "Death cross week: %s\n", sig.CrossDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "Death cross week low: %s%.2f\n", cur, sig.CrossLow)
		fmt.Fprintf(&b, "Price vs cross low: %+.2f%%\n", sig.DropFromLowPct)
	}
	if sig.ShouldSell {
		b.WriteString("\nSell signal: TRIGGERED\n")
	} else {
		b.WriteString("\nSell signal: not triggered\n")
	}
	fmt.Fprintf(&b, "Reason: %s\n", sig.Reason)
	b.WriteString("==========================================\n")
	return b.String()
}
