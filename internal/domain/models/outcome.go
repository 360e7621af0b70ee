package models

import "fmt"

// OutcomeStatus classifies a per-symbol ingestion result.
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "SUCCESS"
	OutcomeSkip    OutcomeStatus = "SKIP"
	OutcomeNoData  OutcomeStatus = "NO_DATA"
	OutcomeError   OutcomeStatus = "ERROR"
)

// IngestOutcome is the result of one symbol's backfill attempt. The
// pipeline reports one per symbol and never a single batch pass/fail.
type IngestOutcome struct {
	Status OutcomeStatus `json:"status"`
	Added  int           `json:"added,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func (o IngestOutcome) String() string {
	switch o.Status {
	case OutcomeSuccess:
		return fmt.Sprintf("SUCCESS (+%d bars)", o.Added)
	case OutcomeError:
		return fmt.Sprintf("ERROR: %s", o.Error)
	default:
		return string(o.Status)
	}
}
