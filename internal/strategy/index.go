package strategy

import (
	"fmt"
	"time"

	"TrendSentry/internal/calculator"
	"TrendSentry/internal/model"
)

// Minimum history for the index-fund check: the monthly MA10 needs a latest
// and a previous value, the weekly MA20 needs a full window plus headroom.
const (
	RequiredMonthlyBars     = 12
	RequiredIndexWeeklyBars = 25
)

// EvaluateIndexBuy runs the two-rule index-fund entry check.
// Rule A: monthly MA10 latest above its previous value. Rule B: weekly MA10
// above weekly MA20. Buy requires both.
func (e *Evaluator) EvaluateIndexBuy(monthly, weekly *model.Series, currentPrice float64) (*model.IndexSignal, error) {
	return e.indexConditions(monthly, weekly, currentPrice)
}

// EvaluateIndexSell runs the exit check for one held lot. Exit is looser
// than entry: either rule failing fires the sell.
func (e *Evaluator) EvaluateIndexSell(monthly, weekly *model.Series, pos model.Position, currentPrice float64) (*model.IndexSignal, error) {
	sig, err := e.indexConditions(monthly, weekly, currentPrice)
	if err != nil {
		return nil, err
	}
	sig.Position = &pos
	sig.HoldingDays = pos.HoldingDays(time.Now())
	if pos.PurchasePrice > 0 {
		sig.ChangePct = (currentPrice - pos.PurchasePrice) / pos.PurchasePrice * 100
	}
	if pos.Quantity > 0 {
		sig.ProfitAmount = (currentPrice - pos.PurchasePrice) * pos.Quantity
	}
	return sig, nil
}

func (e *Evaluator) indexConditions(monthly, weekly *model.Series, currentPrice float64) (*model.IndexSignal, error) {
	if monthly.Len() < RequiredMonthlyBars {
		return nil, fmt.Errorf("%w: need %d monthly bars, have %d", ErrInsufficientData, RequiredMonthlyBars, monthly.Len())
	}
	ma10m := calculator.SMA(monthly.Closes(), 10)
	curMonthly := calculator.At(ma10m, monthly.Len()-1)
	prevMonthly := calculator.At(ma10m, monthly.Len()-2)
	if !model.Defined(curMonthly) || !model.Defined(prevMonthly) {
		return nil, fmt.Errorf("%w: monthly MA10", ErrMissingIndicator)
	}

	if weekly.Len() < RequiredIndexWeeklyBars {
		return nil, fmt.Errorf("%w: need %d weekly bars, have %d", ErrInsufficientData, RequiredIndexWeeklyBars, weekly.Len())
	}
	wCloses := weekly.Closes()
	ma10w := calculator.At(calculator.SMA(wCloses, 10), weekly.Len()-1)
	ma20w := calculator.At(calculator.SMA(wCloses, 20), weekly.Len()-1)
	if !model.Defined(ma10w) || !model.Defined(ma20w) {
		return nil, fmt.Errorf("%w: weekly MA10/MA20", ErrMissingIndicator)
	}

	ruleA := curMonthly > prevMonthly
	ruleB := ma10w > ma20w

	return &model.IndexSignal{
		Symbol:            monthly.Market.DisplaySymbol(monthly.Symbol),
		Market:            monthly.Market,
		CurrentPrice:      currentPrice,
		MonthlyMA10:       curMonthly,
		PrevMonthlyMA10:   prevMonthly,
		WeeklyMA10:        ma10w,
		WeeklyMA20:        ma20w,
		MonthlyTrendUp:    ruleA,
		WeeklyGoldenCross: ruleB,
		Buy:               ruleA && ruleB,
		Sell:              !ruleA || !ruleB,
		MonthlyVolume:     calculator.VolumeTrend(monthly.Tail(10)),
	}, nil
}
