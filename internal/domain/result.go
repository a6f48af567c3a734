package domain

import (
	"image"
	"time"
)

type FileStatus string

const (
	StatusCompleted FileStatus = "completed"
	StatusFailed    FileStatus = "failed"
)

// Stage names the pipeline step a file was in when it failed.
type Stage string

const (
	StageLoad      Stage = "load"
	StageFit       Stage = "fit"
	StageComposite Stage = "composite"
	StageEncode    Stage = "encode"
	StageWrite     Stage = "write"
)

// FileResult is the outcome of one source file.
type FileResult struct {
	RunID     string        `json:"run_id"`
	Source    string        `json:"source"`
	Output    string        `json:"output,omitempty"`
	Counter   int           `json:"counter,omitempty"`
	Status    FileStatus    `json:"status"`
	Stage     Stage         `json:"stage,omitempty"`
	Error     string        `json:"error,omitempty"`
	Placement image.Point   `json:"placement"`
	Duration  time.Duration `json:"duration"`

	Err error `json:"-"`
}

func (r FileResult) Succeeded() bool {
	return r.Status == StatusCompleted
}

// Summary collects the results of a batch run.
type Summary struct {
	RunID        string       `json:"run_id"`
	StartCounter int          `json:"start_counter"`
	NextCounter  int          `json:"next_counter"`
	Processed    int          `json:"processed"`
	Failed       int          `json:"failed"`
	NothingToDo  bool         `json:"nothing_to_do"`
	Interrupted  bool         `json:"interrupted"`
	Results      []FileResult `json:"-"`
}

func (s *Summary) Add(r FileResult) {
	s.Results = append(s.Results, r)
	if r.Succeeded() {
		s.Processed++
		return
	}
	s.Failed++
}

func (s *Summary) Failures() []FileResult {
	var failed []FileResult
	for _, r := range s.Results {
		if !r.Succeeded() {
			failed = append(failed, r)
		}
	}
	return failed
}

const (
	EventFile    = "file"
	EventSummary = "summary"
)

// Event is the payload published for every file result and once per run
// for the summary.
type Event struct {
	Kind    string      `json:"kind"`
	File    *FileResult `json:"file,omitempty"`
	Summary *Summary    `json:"summary,omitempty"`
}
