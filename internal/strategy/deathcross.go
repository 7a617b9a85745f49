package strategy

import (
	"fmt"

	"TrendSentry/internal/calculator"
	"TrendSentry/internal/model"
)

// FindDeathCross scans the series from the most recent bar backward for the
// latest bar where DIF crossed from above DEA to at or below it. Bars with
// undefined DIF/DEA on either side of the candidate crossing are skipped.
// Returns the crossing bar index and its low.
func FindDeathCross(series *model.Series) (idx int, low float64, found bool) {
	n := series.Len()
	if n < 2 {
		return 0, 0, false
	}
	dif, dea, _ := calculator.MACD(series.Closes(), calculator.DefaultFast, calculator.DefaultSlow, calculator.DefaultSignal)
	for i := n - 1; i >= 1; i-- {
		prevDIF, prevDEA := calculator.At(dif, i-1), calculator.At(dea, i-1)
		curDIF, curDEA := calculator.At(dif, i), calculator.At(dea, i)
		if !model.Defined(prevDIF) || !model.Defined(prevDEA) || !model.Defined(curDIF) || !model.Defined(curDEA) {
			continue
		}
		if prevDIF > prevDEA && curDIF <= curDEA {
			return i, series.Bars[i].Low, true
		}
	}
	return 0, 0, false
}

// EvaluateSellSignal checks whether the current price has broken below the
// low of the most recent death-cross week. A series without any crossing
// yields CrossFound=false with an explicit reason, which is not the same
// thing as a crossing that did not trigger.
func (e *Evaluator) EvaluateSellSignal(series *model.Series, currentPrice float64) (*model.SellSignal, error) {
	if series.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 bars, have %d", ErrInsufficientData, series.Len())
	}
	sig := &model.SellSignal{
		Symbol:       series.Market.DisplaySymbol(series.Symbol),
		Market:       series.Market,
		CurrentPrice: currentPrice,
	}
	idx, low, found := FindDeathCross(series)
	if !found {
		sig.Reason = "no death cross found"
		return sig, nil
	}
	sig.CrossFound = true
	sig.CrossDate = series.Bars[idx].Time
	sig.CrossLow = low
	if low > 0 {
		sig.DropFromLowPct = (currentPrice - low) / low * 100
	}
	sig.ShouldSell = currentPrice < low
	if sig.ShouldSell {
		sig.Reason = "price broke below the death-cross week low"
	} else {
		sig.Reason = "price holding above the death-cross week low"
	}
	return sig, nil
}
