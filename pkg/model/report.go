package model

import "time"

// AnalysisRequest describes one analysis job: which package to analyze
// and on which SDK channel.
type AnalysisRequest struct {
	Package PackageRef `json:"package"`
	Channel string     `json:"channel"`
}

// StepResult records one tool invocation executed during a job.
type StepResult struct {
	Name     string        `json:"name"`
	Command  string        `json:"command"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
	Output   string        `json:"output,omitempty"`
}

// Succeeded reports whether the step's tool exited cleanly.
func (s StepResult) Succeeded() bool {
	return s.ExitCode == 0
}

// Report is the outcome of one analysis job.
type Report struct {
	JobID      string       `json:"job_id"`
	Package    string       `json:"package"`
	Version    string       `json:"version"`
	Channel    string       `json:"channel"`
	SDKVersion string       `json:"sdk_version,omitempty"`
	Steps      []StepResult `json:"steps"`
	StartedAt  time.Time    `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	// CacheSizeBytes is the tool environment's cache size measured after
	// the job, purely informational.
	CacheSizeBytes int64 `json:"cache_size_bytes,omitempty"`
}

// Succeeded reports whether every step of the job exited cleanly.
func (r *Report) Succeeded() bool {
	for _, s := range r.Steps {
		if !s.Succeeded() {
			return false
		}
	}
	return true
}
