package models

import "time"

// Job statuses.
const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobComplete   = "complete"
	JobFailed     = "failed"
)

// Job tracks one asynchronous planner run against a session. Progress is
// monotonically non-decreasing and reaches 1.0 exactly when the job turns
// terminal.
type Job struct {
	ID        string    `bson:"id" json:"id"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	Status    string    `bson:"status" json:"status"`
	Progress  float64   `bson:"progress" json:"progress"`
	Message   string    `bson:"message,omitempty" json:"message,omitempty"`
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
	ResultRef string    `bson:"resultRef,omitempty" json:"resultRef,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Terminal reports whether the job has finished, successfully or not.
func (j *Job) Terminal() bool {
	return j.Status == JobComplete || j.Status == JobFailed
}

// Advance moves progress forward, never backward, and stamps the update
// time.
func (j *Job) Advance(progress float64, message string) {
	if progress > j.Progress {
		j.Progress = progress
	}
	if j.Progress > 1.0 {
		j.Progress = 1.0
	}
	if message != "" {
		j.Message = message
	}
	j.UpdatedAt = time.Now()
}

// PlanTaskPayload is the asynq task payload for one planner run.
type PlanTaskPayload struct {
	SessionID string    `json:"sessionId"`
	JobID     string    `json:"jobId"`
	Input     PlanInput `json:"input"`
}

// Plan input kinds.
const (
	InputUtterance = "utterance"
	InputReply     = "reply"
	InputSelection = "selection"
	InputFeedback  = "feedback"
)

// PlanInput is the typed trigger that starts or resumes a planner run.
type PlanInput struct {
	Kind      string `json:"kind"`
	Text      string `json:"text,omitempty"`
	Selection int    `json:"selection,omitempty"`
	Category  string `json:"category,omitempty"`
	Detail    string `json:"detail,omitempty"`
}
