package schema

import "time"

// RunRecord represents a row from the lightcurve_runs table.
type RunRecord struct {
	RunID      string        `json:"run_id"`
	Command    Command       `json:"command"`
	Filename   string        `json:"filename"`
	Location   string        `json:"location"`
	Outcome    Outcome       `json:"outcome"`
	Message    string        `json:"message"`
	Points     int           `json:"points"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	BaseDir    string        `json:"base_dir"`
	Display    DisplayMode   `json:"display"`
	ImageBytes int           `json:"image_bytes"`
}

// HistoryStatus represents the status of the history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	FailedRuns    int              `json:"failed_runs"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
