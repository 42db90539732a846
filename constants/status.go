package constants

// RunStatus is the canonical per-file outcome for pipeline runs.
type RunStatus string

// Stable values (these exact strings end up in summary reports and the history DB).
const (
	RunStatusSuccess    RunStatus = "success"     // extracted and persisted
	RunStatusSaveFailed RunStatus = "save_failed" // extracted but persistence returned false
	RunStatusFailed     RunStatus = "failed"      // text extraction failed or yielded nothing
	RunStatusError      RunStatus = "error"       // unexpected error outside the extraction call
)
