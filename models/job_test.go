package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobAdvanceIsMonotone(t *testing.T) {
	job := &Job{ID: "j1", Status: JobProcessing}

	job.Advance(0.25, "gathering")
	assert.Equal(t, 0.25, job.Progress)
	assert.Equal(t, "gathering", job.Message)

	// A lower value never moves progress backward.
	job.Advance(0.10, "stale update")
	assert.Equal(t, 0.25, job.Progress)
	assert.Equal(t, "stale update", job.Message)

	job.Advance(0.80, "")
	assert.Equal(t, 0.80, job.Progress)
	assert.Equal(t, "stale update", job.Message, "empty message keeps the previous one")

	job.Advance(1.5, "done")
	assert.Equal(t, 1.0, job.Progress, "progress is clamped at 1.0")
}

func TestJobTerminal(t *testing.T) {
	assert.False(t, (&Job{Status: JobPending}).Terminal())
	assert.False(t, (&Job{Status: JobProcessing}).Terminal())
	assert.True(t, (&Job{Status: JobComplete}).Terminal())
	assert.True(t, (&Job{Status: JobFailed}).Terminal())
}
