package runlog

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeDryRun  = "dry-run"
)

// Run is one persisted export run.
type Run struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Args       string    `json:"args,omitempty"`
	Source     string    `json:"source"`
	Output     string    `json:"output,omitempty"`
	Fetched    int       `json:"fetched"`
	Exported   int       `json:"exported"`
	Discarded  int       `json:"discarded"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}
