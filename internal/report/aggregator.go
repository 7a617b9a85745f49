package report

import (
	"sort"

	"TrendSentry/internal/model"
)

// DefaultTopN caps how many actionable symbols get a detailed block in the
// rendered report. The summary always carries the true totals.
const DefaultTopN = 5

// RankedReport is the aggregated outcome of one batch evaluation.
type RankedReport struct {
	// Results holds every evaluated symbol in scan order.
	Results []*model.AnalysisResult
	// Actionable is ranked by descending pass count, tie-broken by scan
	// order, capped at TopN.
	Actionable []*model.AnalysisResult
	// ActionableTotal is the full actionable count before the display cap.
	ActionableTotal int
	// Failed lists symbols whose fetch or evaluation failed.
	Failed    []string
	Threshold int
	TopN      int
}

// NotActionableTotal counts evaluated symbols below the threshold.
func (r *RankedReport) NotActionableTotal() int {
	return len(r.Results) - r.ActionableTotal
}

// Aggregate ranks actionable results and applies the display cap. A symbol
// excluded from detailed display still counts toward ActionableTotal.
func Aggregate(results []*model.AnalysisResult, failed []string, threshold, topN int) *RankedReport {
	if topN <= 0 {
		topN = DefaultTopN
	}
	rep := &RankedReport{
		Results:   results,
		Failed:    failed,
		Threshold: threshold,
		TopN:      topN,
	}

	actionable := make([]*model.AnalysisResult, 0, len(results))
	for _, r := range results {
		if r.Actionable {
			actionable = append(actionable, r)
		}
	}
	// Stable sort keeps scan order as the tie-break for equal pass counts.
	sort.SliceStable(actionable, func(i, j int) bool {
		return actionable[i].PassCount > actionable[j].PassCount
	})
	rep.ActionableTotal = len(actionable)
	if len(actionable) > topN {
		actionable = actionable[:topN]
	}
	rep.Actionable = actionable
	return rep
}
