package narrative

import "fmt"

// ChecklistPrompt wraps a formatted buy checklist report for the model.
func ChecklistPrompt(report string) string {
	return fmt.Sprintf(`Below is a weekly buy checklist evaluation for one stock.
Ten technical conditions were checked against weekly bars.

%s

Write a short commentary (under 150 words): state how many conditions passed,
which failures matter most, and whether the checklist supports buying now.`, report)
}

// ScanPrompt wraps a formatted batch scan summary for the model.
func ScanPrompt(report string) string {
	return fmt.Sprintf(`Below is a batch scan summary. Each candidate passed the
buy checklist threshold; candidates are ranked by conditions passed.

%s

Write a short commentary (under 200 words): highlight the strongest candidates
and note how selective the scan was overall.`, report)
}

// IndexPrompt wraps a formatted index trend evaluation for the model.
func IndexPrompt(report string) string {
	return fmt.Sprintf(`Below is an index trend evaluation using monthly and
weekly moving averages.

%s

Write a short commentary (under 120 words) on the trend state and what the
signal implies for position sizing.`, report)
}

// StopLossPrompt wraps a formatted stop-loss check for the model.
func StopLossPrompt(report string) string {
	return fmt.Sprintf(`Below is a stop-loss check across held purchase lots.
A lot triggers when its drawdown from purchase price reaches the threshold.

%s

Write a short commentary (under 120 words): name any triggered lots and the
loss involved, or confirm all lots are within tolerance.`, report)
}

// SellPrompt wraps a formatted MACD sell evaluation for the model.
func SellPrompt(report string) string {
	return fmt.Sprintf(`Below is a sell evaluation based on the most recent MACD
death cross and the price relative to that bar's low.

%s

Write a short commentary (under 120 words) on whether the exit condition is
met and how decisive the signal is.`, report)
}
