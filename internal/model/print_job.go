// internal/model/print_job.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the outcome of a print job
type JobStatus string

const (
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// PrintJob is one or more TicketML documents rendered in order through a
// single backend instance. An empty Backend selects the configured default.
type PrintJob struct {
	ID        uuid.UUID `json:"id"`
	Backend   string    `json:"backend"`
	Documents [][]byte  `json:"-"`
}

// NewPrintJob creates a job with a fresh ID
func NewPrintJob(backend string, documents ...[]byte) *PrintJob {
	return &PrintJob{
		ID:        uuid.New(),
		Backend:   backend,
		Documents: documents,
	}
}

// PrintResult summarises a finished job
type PrintResult struct {
	JobID        uuid.UUID      `json:"job_id"`
	Backend      string         `json:"backend"`
	Connection   ConnectionType `json:"connection"`
	Status       JobStatus      `json:"status"`
	Documents    int            `json:"documents"`
	BytesWritten int64          `json:"bytes_written"`
	Duration     string         `json:"duration"`
	Timestamp    time.Time      `json:"timestamp"`
}
