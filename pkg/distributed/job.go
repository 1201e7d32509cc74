package distributed

import "time"

// JobState is the lifecycle state of a submitted job as reported by the
// cluster. States only ever move toward a terminal one.
type JobState string

const (
	StatePending   JobState = "pending"
	StateQueued    JobState = "queued"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
	StateCanceled  JobState = "canceled"
)

// String returns the wire form of the state.
func (s JobState) String() string {
	return string(s)
}

// Terminal reports whether the job has stopped progressing.
func (s JobState) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateCanceled:
		return true
	}
	return false
}

// JobRequest is the marshalled form of a job handed to the cluster. Options
// carries the engine's keyword parameters verbatim; this client never
// interprets them.
type JobRequest struct {
	ID            string         `json:"id"`
	Model         string         `json:"model"`
	Dataset       string         `json:"dataset"`
	Target        string         `json:"target"`
	Features      []string       `json:"features,omitempty"`
	ValidationSet string         `json:"validation_set,omitempty"`
	Options       map[string]any `json:"options"`
}

// Job is the submission handle returned by the cluster. It is a snapshot;
// fetch a fresh one with Status.
type Job struct {
	ID          string    `json:"id"`
	Model       string    `json:"model"`
	State       JobState  `json:"state"`
	Message     string    `json:"message,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// JobEvent is one progress frame from a job's event stream.
type JobEvent struct {
	State    JobState `json:"state"`
	Message  string   `json:"message,omitempty"`
	Progress float64  `json:"progress,omitempty"`
}
