package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnsupportedBranch = errors.New("branch name does not match the expected patterns")
	ErrMalformedAsset    = errors.New("malformed asset")
	ErrNotFound          = errors.New("not found")
)

// Dataset is a BigQuery dataset as seen while resolving the branch dataset.
type Dataset struct {
	ID           string
	Labels       map[string]string
	CreationTime time.Time
}

type DatasetMetadata struct {
	Location               string
	DefaultTableExpiration time.Duration
}

type JobState string

const (
	JobStatePending JobState = "PENDING"
	JobStateRunning JobState = "RUNNING"
	JobStateDone    JobState = "DONE"
)

// JobStatus is the terminal status of a synchronously executed query.
type JobStatus struct {
	JobID     string
	State     JobState
	Err       error
	TotalRows uint64
}

// ScheduledQuery is a transfer config of the scheduled_query data source.
type ScheduledQuery struct {
	Name         string
	DisplayName  string
	DataSourceID string
	Query        string
	Schedule     string
}

// QueryError is returned when a submitted query does not complete successfully.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("query failed: %s", e.Query)
	}
	return fmt.Sprintf("query failed: %s: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
