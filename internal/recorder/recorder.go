package recorder

import "TrendSentry/internal/model"

// ScanRecord holds one symbol's checklist outcome within a run.
type ScanRecord struct {
	RunType    string // "single", "scan"
	Symbol     string
	Market     string
	PassCount  int
	Threshold  int
	Actionable bool
	Close      float64
	MA10       float64
	MA20       float64
	MA30       float64
	MACDDIF    float64
	MACDDEA    float64
}

// SignalEvent records an index, stop-loss, or sell evaluation outcome.
type SignalEvent struct {
	EventType string // "index_buy", "index_sell", "stop_loss", "sell_check"
	Symbol    string
	Market    string
	Triggered bool
	Price     float64
	Detail    string
}

// Recorder persists historical signal data for later review.
type Recorder interface {
	RecordScan(rec *ScanRecord) error
	RecordSignal(evt *SignalEvent) error
	Close() error
}

// ScanRecordFrom builds a ScanRecord from an analysis result.
func ScanRecordFrom(runType string, res *model.AnalysisResult, threshold int) *ScanRecord {
	return &ScanRecord{
		RunType:    runType,
		Symbol:     res.Symbol,
		Market:     string(res.Market),
		PassCount:  res.PassCount,
		Threshold:  threshold,
		Actionable: res.Actionable,
		Close:      res.Snapshot.Close,
		MA10:       res.Snapshot.MA10,
		MA20:       res.Snapshot.MA20,
		MA30:       res.Snapshot.MA30,
		MACDDIF:    res.Snapshot.MACDDIF,
		MACDDEA:    res.Snapshot.MACDDEA,
	}
}
