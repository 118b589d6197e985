package http

import "dora-metrics-collector/internal/metrics"

// Outcome labels returned to the routing layer.
const (
	outcomeEmitted   = "emitted"
	outcomeSkipped   = "skipped"
	outcomeDiscarded = "discarded"
)

type recordResp struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
	Points  int    `json:"points"`
}

func newRecordResp(output metrics.RecordOutput) recordResp {
	if output.Skipped {
		return recordResp{Outcome: outcomeSkipped, Reason: output.Reason}
	}
	return recordResp{Outcome: outcomeEmitted, Points: len(output.Points)}
}

func newDiscardedResp(reason string) recordResp {
	return recordResp{Outcome: outcomeDiscarded, Reason: reason}
}
