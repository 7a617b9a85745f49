package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"TrendSentry/internal/collector"
	"TrendSentry/internal/config"
	"TrendSentry/internal/model"
	"TrendSentry/internal/narrative"
	"TrendSentry/internal/notifier"
	"TrendSentry/internal/position"
	"TrendSentry/internal/recorder"
	"TrendSentry/internal/report"
	"TrendSentry/internal/strategy"
)

// Bar counts requested per fetch. Wider than the evaluator minimums so
// the EMA chain has warmup history before the scored bars.
const (
	weeklyFetchBars  = 60
	monthlyFetchBars = 24
)

// Runner executes the signal pipelines: fetch, evaluate, format,
// narrate, deliver, record.
type Runner struct {
	Collector *collector.Collector
	Single    *strategy.Evaluator
	Batch     *strategy.Evaluator
	Narrative *narrative.Client
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Cfg       *config.Config
}

// NewRunner wires a Runner from loaded config and shared components.
func NewRunner(cfg *config.Config, col *collector.Collector, llm *narrative.Client, n notifier.Notifier, rec recorder.Recorder) *Runner {
	return &Runner{
		Collector: col,
		Single:    strategy.NewEvaluator(cfg.Scan.SingleThreshold, cfg.StopLoss.ThresholdPct),
		Batch:     strategy.NewEvaluator(cfg.Scan.Threshold, cfg.StopLoss.ThresholdPct),
		Narrative: llm,
		Notifier:  n,
		Recorder:  rec,
		Cfg:       cfg,
	}
}

// RunSingleCheck evaluates the buy checklist for one symbol and
// delivers a standalone report.
func (r *Runner) RunSingleCheck(ctx context.Context, symbol string) error {
	market := model.DetectMarket(symbol)
	res, err := r.evaluateSymbol(ctx, symbol, market, r.Single)
	if err != nil {
		return err
	}
	body := report.FormatChecklist(res)
	r.record(recorder.ScanRecordFrom("single", res, r.Single.BuyThreshold))
	return r.deliver(ctx, fmt.Sprintf("Buy Checklist: %s", res.Symbol), body, narrative.ChecklistPrompt)
}

// RunWatchlistReport evaluates every watchlist symbol and delivers one
// combined report. A symbol that fails to fetch or evaluate is logged
// and skipped; the run only aborts when every symbol failed.
func (r *Runner) RunWatchlistReport(ctx context.Context) error {
	symbols := watchlistSymbols(r.Cfg)
	if len(symbols) == 0 {
		return fmt.Errorf("watchlist is empty")
	}

	var sections []string
	var failed []string
	actionable := 0
	for _, sym := range symbols {
		market := model.DetectMarket(sym)
		res, err := r.evaluateSymbol(ctx, sym, market, r.Single)
		if err != nil {
			log.Printf("[WARN] watchlist %s: %v", sym, err)
			failed = append(failed, sym)
			continue
		}
		if res.Actionable {
			actionable++
		}
		sections = append(sections, report.FormatChecklist(res))
		r.record(recorder.ScanRecordFrom("single", res, r.Single.BuyThreshold))
	}
	if len(sections) == 0 {
		return fmt.Errorf("all %d watchlist symbols failed", len(symbols))
	}

	body := strings.Join(sections, "\n")
	if len(failed) > 0 {
		body += fmt.Sprintf("\nSkipped (fetch/evaluate failed): %s\n", strings.Join(failed, ", "))
	}
	subject := fmt.Sprintf("Weekly Buy Checklist: %d of %d actionable", actionable, len(sections))
	return r.deliver(ctx, subject, body, narrative.ChecklistPrompt)
}

// RunScan evaluates the scan universe against the strict threshold and
// delivers a ranked top-N summary.
func (r *Runner) RunScan(ctx context.Context) error {
	universe := r.Cfg.Scan.Universe
	if len(universe) == 0 {
		return fmt.Errorf("scan universe is empty")
	}

	var results []*model.AnalysisResult
	var failed []string
	for i, sym := range universe {
		market := model.DetectMarket(sym)
		res, err := r.evaluateSymbol(ctx, sym, market, r.Batch)
		if err != nil {
			log.Printf("[WARN] scan %s: %v", sym, err)
			failed = append(failed, sym)
			continue
		}
		res.ScanOrder = i
		results = append(results, res)
		r.record(recorder.ScanRecordFrom("scan", res, r.Batch.BuyThreshold))
	}
	if len(results) == 0 {
		return fmt.Errorf("all %d scan symbols failed", len(universe))
	}

	ranked := report.Aggregate(results, failed, r.Batch.BuyThreshold, r.Cfg.Scan.TopN)
	body := report.FormatScanSummary(ranked)
	subject := fmt.Sprintf("Market Scan: %d of %d actionable", ranked.ActionableTotal, len(ranked.Results))
	return r.deliver(ctx, subject, body, narrative.ScanPrompt)
}

// RunIndexBuy checks the two-rule entry condition for both market indexes.
func (r *Runner) RunIndexBuy(ctx context.Context) error {
	var sections []string
	buys := 0
	for _, idx := range r.indexSymbols() {
		sig, err := r.evaluateIndex(ctx, idx.symbol, idx.market, nil)
		if err != nil {
			log.Printf("[WARN] index buy %s: %v", idx.symbol, err)
			continue
		}
		if sig.Buy {
			buys++
		}
		sections = append(sections, report.FormatIndexSignal(sig))
		r.recordSignal(&recorder.SignalEvent{
			EventType: "index_buy", Symbol: sig.Symbol, Market: string(sig.Market),
			Triggered: sig.Buy, Price: sig.CurrentPrice,
			Detail: fmt.Sprintf("monthly_trend_up=%t weekly_golden_cross=%t", sig.MonthlyTrendUp, sig.WeeklyGoldenCross),
		})
	}
	if len(sections) == 0 {
		return fmt.Errorf("all index evaluations failed")
	}
	subject := fmt.Sprintf("Index Entry Check: %d of %d buy signals", buys, len(sections))
	return r.deliver(ctx, subject, strings.Join(sections, "\n"), narrative.IndexPrompt)
}

// RunIndexSell checks the exit condition per held index lot. Markets
// with no held lots still get a plain condition report.
func (r *Runner) RunIndexSell(ctx context.Context) error {
	var sections []string
	sells := 0
	for _, idx := range r.indexSymbols() {
		lots := lotsForSymbol(position.Load(idx.holdings), idx.symbol)
		if len(lots) == 0 {
			sig, err := r.evaluateIndex(ctx, idx.symbol, idx.market, nil)
			if err != nil {
				log.Printf("[WARN] index sell %s: %v", idx.symbol, err)
				continue
			}
			if sig.Sell {
				sells++
			}
			sections = append(sections, report.FormatIndexSignal(sig))
			continue
		}
		for i := range lots {
			sig, err := r.evaluateIndex(ctx, idx.symbol, idx.market, &lots[i])
			if err != nil {
				log.Printf("[WARN] index sell %s lot %d: %v", idx.symbol, i, err)
				continue
			}
			if sig.Sell {
				sells++
			}
			sections = append(sections, report.FormatIndexSignal(sig))
			r.recordSignal(&recorder.SignalEvent{
				EventType: "index_sell", Symbol: sig.Symbol, Market: string(sig.Market),
				Triggered: sig.Sell, Price: sig.CurrentPrice,
				Detail: fmt.Sprintf("holding_days=%d change_pct=%.2f", sig.HoldingDays, sig.ChangePct),
			})
		}
	}
	if len(sections) == 0 {
		return fmt.Errorf("all index evaluations failed")
	}
	subject := fmt.Sprintf("Index Exit Check: %d of %d sell signals", sells, len(sections))
	return r.deliver(ctx, subject, strings.Join(sections, "\n"), narrative.IndexPrompt)
}

// RunStopLoss checks every held lot against the drawdown threshold.
func (r *Runner) RunStopLoss(ctx context.Context) error {
	files := []struct {
		path   string
		market model.Market
	}{
		{r.Cfg.StopLoss.HoldingsUS, model.MarketUS},
		{r.Cfg.StopLoss.HoldingsHK, model.MarketHK},
	}

	var checks []model.StopLossCheck
	for _, f := range files {
		lots := position.Load(f.path)
		if len(lots) == 0 {
			continue
		}
		prices := map[string]float64{}
		for _, lot := range lots {
			price, ok := prices[lot.Symbol]
			if !ok {
				var err error
				price, err = r.Collector.CurrentPrice(ctx, lot.Symbol, f.market)
				if err != nil {
					log.Printf("[WARN] stop-loss price %s: %v", lot.Symbol, err)
					continue
				}
				prices[lot.Symbol] = price
			}
			check := r.Single.CheckStopLoss(lot, price)
			check.Market = f.market
			checks = append(checks, check)
			if check.Triggered {
				r.recordSignal(&recorder.SignalEvent{
					EventType: "stop_loss", Symbol: lot.Symbol, Market: string(f.market),
					Triggered: true, Price: price,
					Detail: fmt.Sprintf("drop_pct=%.2f threshold=%.1f", check.DropPct, check.ThresholdPct),
				})
			}
		}
	}
	if len(checks) == 0 {
		log.Println("[INFO] stop-loss check: no held lots")
		return nil
	}

	triggered := 0
	for _, c := range checks {
		if c.Triggered {
			triggered++
		}
	}
	body := report.FormatStopLoss(checks)
	subject := fmt.Sprintf("Stop-Loss Check: %d of %d lots triggered", triggered, len(checks))
	return r.deliver(ctx, subject, body, narrative.StopLossPrompt)
}

// RunSellCheck evaluates the MACD death-cross exit rule for one symbol.
// The cross is found on weekly bars; its week low is the sell floor.
func (r *Runner) RunSellCheck(ctx context.Context, symbol string) error {
	market := model.DetectMarket(symbol)
	series, err := r.Collector.FetchSeries(ctx, symbol, market, model.IntervalWeekly, weeklyFetchBars)
	if err != nil {
		return err
	}
	price, err := r.Collector.CurrentPrice(ctx, symbol, market)
	if err != nil {
		return err
	}
	sig, err := r.Single.EvaluateSellSignal(series, price)
	if err != nil {
		return err
	}
	r.recordSignal(&recorder.SignalEvent{
		EventType: "sell_check", Symbol: sig.Symbol, Market: string(sig.Market),
		Triggered: sig.ShouldSell, Price: price, Detail: sig.Reason,
	})
	body := report.FormatSellSignal(sig)
	subject := fmt.Sprintf("Sell Check: %s holding", sig.Symbol)
	if sig.ShouldSell {
		subject = fmt.Sprintf("Sell Check: %s SELL", sig.Symbol)
	}
	return r.deliver(ctx, subject, body, narrative.SellPrompt)
}

func (r *Runner) evaluateSymbol(ctx context.Context, symbol string, market model.Market, eval *strategy.Evaluator) (*model.AnalysisResult, error) {
	series, err := r.Collector.FetchSeries(ctx, symbol, market, model.IntervalWeekly, weeklyFetchBars)
	if err != nil {
		return nil, err
	}
	return eval.EvaluateBuyChecklist(series)
}

func (r *Runner) evaluateIndex(ctx context.Context, symbol string, market model.Market, lot *model.Position) (*model.IndexSignal, error) {
	monthly, err := r.Collector.FetchSeries(ctx, symbol, market, model.IntervalMonthly, monthlyFetchBars)
	if err != nil {
		return nil, err
	}
	weekly, err := r.Collector.FetchSeries(ctx, symbol, market, model.IntervalWeekly, weeklyFetchBars)
	if err != nil {
		return nil, err
	}
	price, err := r.Collector.CurrentPrice(ctx, symbol, market)
	if err != nil {
		return nil, err
	}
	if lot != nil {
		return r.Single.EvaluateIndexSell(monthly, weekly, *lot, price)
	}
	return r.Single.EvaluateIndexBuy(monthly, weekly, price)
}

// deliver optionally rewrites the raw report as commentary, then sends
// it. Narrative and delivery failures degrade, never abort the run.
func (r *Runner) deliver(ctx context.Context, subject, body string, prompt func(string) string) error {
	out := body
	if r.Narrative != nil {
		rendered, err := r.Narrative.Render(ctx, prompt(body))
		if err != nil {
			log.Printf("[WARN] narrative rendering failed, sending raw report: %v", err)
		} else {
			out = rendered + "\n\n--- Raw Report ---\n" + body
		}
	}
	if err := r.Notifier.Send(subject, out); err != nil {
		log.Printf("[ERROR] deliver %q: %v", subject, err)
		fmt.Println(out)
	}
	return nil
}

func (r *Runner) record(rec *recorder.ScanRecord) {
	if err := r.Recorder.RecordScan(rec); err != nil {
		log.Printf("[ERROR] record scan %s: %v", rec.Symbol, err)
	}
}

func (r *Runner) recordSignal(evt *recorder.SignalEvent) {
	if err := r.Recorder.RecordSignal(evt); err != nil {
		log.Printf("[ERROR] record signal %s: %v", evt.Symbol, err)
	}
}

type indexTarget struct {
	symbol   string
	market   model.Market
	holdings string
}

func (r *Runner) indexSymbols() []indexTarget {
	return []indexTarget{
		{r.Cfg.Index.US, model.MarketUS, r.Cfg.StopLoss.HoldingsUS},
		{r.Cfg.Index.HK, model.MarketHK, r.Cfg.StopLoss.HoldingsHK},
	}
}

func watchlistSymbols(cfg *config.Config) []string {
	out := make([]string, 0, len(cfg.Watchlist.US)+len(cfg.Watchlist.HK))
	out = append(out, cfg.Watchlist.US...)
	out = append(out, cfg.Watchlist.HK...)
	return out
}

func lotsForSymbol(lots []model.Position, symbol string) []model.Position {
	var out []model.Position
	for _, lot := range lots {
		if lot.Symbol == symbol {
			out = append(out, lot)
		}
	}
	return out
}
