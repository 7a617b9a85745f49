package strategy

import "TrendSentry/internal/model"

// CheckStopLoss computes the stop-loss for one purchase lot. Each lot gets
// its own threshold price from its own purchase price; lots of the same
// symbol are never pooled.
func (e *Evaluator) CheckStopLoss(pos model.Position, currentPrice float64) model.StopLossCheck {
	check := model.StopLossCheck{
		Position:     pos,
		Market:       model.DetectMarket(pos.Symbol),
		CurrentPrice: currentPrice,
		ThresholdPct: e.StopLossPct,
	}
	if pos.PurchasePrice <= 0 {
		return check
	}
	check.DropPct = (pos.PurchasePrice - currentPrice) / pos.PurchasePrice * 100
	check.Triggered = check.DropPct >= e.StopLossPct
	if pos.Quantity > 0 {
		check.LossAmount = (pos.PurchasePrice - currentPrice) * pos.Quantity
	}
	return check
}
