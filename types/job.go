package types

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gbl08ma/sqalx"
)

// JobKind is the kind of computation a job tracks
type JobKind string

const (
	// JobKindRoute computes a timetable itinerary
	JobKindRoute JobKind = "Route"
	// JobKindDiagram computes a road graph path and renders it as a diagram
	JobKindDiagram JobKind = "Diagram"
)

// JobStatus is the lifecycle state of a job
type JobStatus string

const (
	// JobStatusProcessing means the computation has not reached a terminal state yet
	JobStatusProcessing JobStatus = "Processing"
	// JobStatusDone means the computation finished and its artifact is available
	JobStatusDone JobStatus = "Done"
	// JobStatusFailed means the computation terminated without producing an artifact
	JobStatusFailed JobStatus = "Failed"
)

// Terminal reports whether this status is a terminal one
func (s JobStatus) Terminal() bool {
	return s == JobStatusDone || s == JobStatusFailed
}

// Job is a tracked unit of asynchronous route computation
type Job struct {
	ID           string
	Kind         JobKind
	Status       JobStatus
	GraphID      string
	StartStation string
	EndStation   string
}

// GetJob returns the Job with the given ID
func GetJob(node sqalx.Node, id string) (*Job, error) {
	jobs := []*Job{}

	tx, err := node.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Commit() // read-only tx

	rows, err := sdb.Select("id", "kind", "status", "graph_id", "start_station", "end_station").
		From("job").
		Where(sq.Eq{"id": id}).
		RunWith(tx).Query()
	if err != nil {
		return nil, fmt.Errorf("GetJob: %s", err)
	}
	defer rows.Close()

	for rows.Next() {
		var job Job
		err := rows.Scan(
			&job.ID,
			&job.Kind,
			&job.Status,
			&job.GraphID,
			&job.StartStation,
			&job.EndStation)
		if err != nil {
			return nil, fmt.Errorf("GetJob: %s", err)
		}
		jobs = append(jobs, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetJob: %s", err)
	}
	if len(jobs) == 0 {
		return nil, ErrNotFound
	}
	return jobs[0], nil
}

// Update adds or updates the job
func (job *Job) Update(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Insert("job").
		Columns("id", "kind", "status", "graph_id", "start_station", "end_station").
		Values(job.ID, job.Kind, job.Status, job.GraphID, job.StartStation, job.EndStation).
		Suffix("ON CONFLICT (id) DO UPDATE SET status = ?", job.Status).
		RunWith(tx).Exec()

	if err != nil {
		return fmt.Errorf("AddJob: %s", err)
	}
	return tx.Commit()
}

// SetStatus transitions the job to the given status and persists it.
// Terminal statuses never revert: once Done or Failed, the job stays there.
func (job *Job) SetStatus(node sqalx.Node, status JobStatus) error {
	if job.Status.Terminal() && status != job.Status {
		return fmt.Errorf("SetStatus: job %s is already %s", job.ID, job.Status)
	}
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Update("job").
		Set("status", status).
		Where(sq.Eq{"id": job.ID}).
		RunWith(tx).Exec()
	if err != nil {
		return fmt.Errorf("SetStatus: %s", err)
	}
	job.Status = status
	return tx.Commit()
}
