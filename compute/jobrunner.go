// Package compute implements the route computation engine: the geometric
// shortest path search, the timetable itinerary search, the diagram renderer
// and the asynchronous job runner that ties them to persisted artifacts.
package compute

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	uuid "github.com/satori/go.uuid"

	"github.com/railrouted/trainrouter/types"
)

const (
	// DefaultJobTimeout bounds how long a dispatched computation may take
	// before its job is failed
	DefaultJobTimeout = 1 * time.Minute
	// DefaultMaxConcurrentJobs bounds how many computations run at once
	DefaultMaxConcurrentJobs = 4
)

// RouteStore is the persistence surface the job runner needs. *types.DBStore
// implements it against Postgres; tests implement it in memory.
type RouteStore interface {
	Stations(graphID string) ([]*types.Station, error)
	TrainLegs(graphID string) ([]*types.TrainLeg, error)
	Job(id string) (*types.Job, error)
	SaveJob(job *types.Job) error
	SetJobStatus(id string, status types.JobStatus) error
	RoutePlan(graphID, startStation, endStation string) (*types.RoutePlan, error)
	SaveRoutePlan(plan *types.RoutePlan) error
	Diagram(graphID, startStation, endStation string) (*types.Diagram, error)
	SaveDiagram(diagram *types.Diagram) error
}

// JobRunner coordinates asynchronous route computations. Submit persists a
// Processing job and returns at once; a bounded set of workers runs the
// computations, consulting the artifact cache first so identical requests
// never recompute. Every dispatched computation reaches a terminal status
// (Done or Failed) within the configured timeout.
type JobRunner struct {
	store   RouteStore
	log     *log.Logger
	timeout time.Duration

	// artifacts fronts the persisted artifact tables for idempotency lookups
	artifacts *cache.Cache

	// Telemetry, if set, receives the terminal status of every finished job.
	// Sends never block.
	Telemetry chan<- types.JobStatus

	slots chan struct{}
	wg    sync.WaitGroup

	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

// NewJobRunner returns a JobRunner using the given store
func NewJobRunner(store RouteStore, logger *log.Logger) *JobRunner {
	return &JobRunner{
		store:     store,
		log:       logger,
		timeout:   DefaultJobTimeout,
		artifacts: cache.New(cache.NoExpiration, 10*time.Minute),
		slots:     make(chan struct{}, DefaultMaxConcurrentJobs),
		inflight:  make(map[string]*sync.Mutex),
	}
}

// WithTimeout sets the per-job computation timeout
func (r *JobRunner) WithTimeout(timeout time.Duration) *JobRunner {
	r.timeout = timeout
	return r
}

// Submit persists a new Processing job for the given computation and
// dispatches it, returning the job ID without waiting for the result.
// Callers observe progress by polling the job status.
func (r *JobRunner) Submit(kind types.JobKind, graphID, startStation, endStation string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("Submit: %s", err)
	}
	job := &types.Job{
		ID:           id.String(),
		Kind:         kind,
		Status:       types.JobStatusProcessing,
		GraphID:      graphID,
		StartStation: startStation,
		EndStation:   endStation,
	}
	err = r.store.SaveJob(job)
	if err != nil {
		return "", fmt.Errorf("Submit: %s", err)
	}

	r.wg.Add(1)
	go r.run(job)
	return job.ID, nil
}

// Wait blocks until all dispatched computations have reached a terminal
// status
func (r *JobRunner) Wait() {
	r.wg.Wait()
}

func (r *JobRunner) run(job *types.Job) {
	defer r.wg.Done()
	r.slots <- struct{}{}
	defer func() { <-r.slots }()

	// single flight per artifact key: concurrent first requests for the same
	// key wait for one computation instead of racing it
	unlock := r.lockKey(r.artifactKey(job))
	defer unlock()

	result := make(chan types.JobStatus, 1)
	go func() {
		result <- r.computeJob(job)
	}()

	var status types.JobStatus
	select {
	case status = <-result:
	case <-time.After(r.timeout):
		r.log.Printf("job %s: computation timed out after %s", job.ID, r.timeout)
		status = types.JobStatusFailed
	}
	r.finish(job, status)
}

func (r *JobRunner) computeJob(job *types.Job) types.JobStatus {
	switch job.Kind {
	case types.JobKindDiagram:
		return r.computeDiagram(job)
	case types.JobKindRoute:
		return r.computeRoute(job)
	}
	r.log.Printf("job %s: unknown kind %q", job.ID, job.Kind)
	return types.JobStatusFailed
}

func (r *JobRunner) computeDiagram(job *types.Job) types.JobStatus {
	if hit, status := r.cachedDiagram(job); hit {
		return status
	}

	stations, err := r.store.Stations(job.GraphID)
	if err != nil {
		r.log.Printf("job %s: %s", job.ID, err)
		return types.JobStatusFailed
	}
	if len(stations) == 0 {
		r.log.Printf("job %s: road graph %s has no stations", job.ID, job.GraphID)
		return types.JobStatusFailed
	}

	path := ShortestPath(stations, job.StartStation, job.EndStation)
	if len(path) == 0 {
		r.log.Printf("job %s: no path from %q to %q in road graph %s",
			job.ID, job.StartStation, job.EndStation, job.GraphID)
		return types.JobStatusFailed
	}

	pathStations := make([]*types.Station, len(path))
	for i, step := range path {
		pathStations[i] = step.Station
	}
	diagram := &types.Diagram{
		GraphID:      job.GraphID,
		StartStation: job.StartStation,
		EndStation:   job.EndStation,
		SVG:          BuildDiagram(pathStations),
	}
	err = r.store.SaveDiagram(diagram)
	if err != nil {
		r.log.Printf("job %s: %s", job.ID, err)
		return types.JobStatusFailed
	}
	r.artifacts.SetDefault(r.artifactKey(job), diagram)
	return types.JobStatusDone
}

func (r *JobRunner) computeRoute(job *types.Job) types.JobStatus {
	if hit, status := r.cachedRoutePlan(job); hit {
		return status
	}

	legs, err := r.store.TrainLegs(job.GraphID)
	if err != nil {
		r.log.Printf("job %s: %s", job.ID, err)
		return types.JobStatusFailed
	}
	if len(legs) == 0 {
		r.log.Printf("job %s: timetable %s has no legs", job.ID, job.GraphID)
		return types.JobStatusFailed
	}

	route := FastestItinerary(legs, job.StartStation, job.EndStation)
	if len(route) == 0 {
		r.log.Printf("job %s: no itinerary from %q to %q in timetable %s",
			job.ID, job.StartStation, job.EndStation, job.GraphID)
		return types.JobStatusFailed
	}

	plan := &types.RoutePlan{
		GraphID:      job.GraphID,
		StartStation: job.StartStation,
		EndStation:   job.EndStation,
		Legs:         route,
	}
	err = r.store.SaveRoutePlan(plan)
	if err != nil {
		r.log.Printf("job %s: %s", job.ID, err)
		return types.JobStatusFailed
	}
	r.artifacts.SetDefault(r.artifactKey(job), plan)
	return types.JobStatusDone
}

// cachedDiagram reports whether the diagram for this job's key already
// exists, checking the in-memory layer before the database
func (r *JobRunner) cachedDiagram(job *types.Job) (bool, types.JobStatus) {
	if _, ok := r.artifacts.Get(r.artifactKey(job)); ok {
		return true, types.JobStatusDone
	}
	diagram, err := r.store.Diagram(job.GraphID, job.StartStation, job.EndStation)
	if err == nil {
		r.artifacts.SetDefault(r.artifactKey(job), diagram)
		return true, types.JobStatusDone
	}
	if !errors.Is(err, types.ErrNotFound) {
		r.log.Printf("job %s: %s", job.ID, err)
		return true, types.JobStatusFailed
	}
	return false, types.JobStatusProcessing
}

// cachedRoutePlan is the route plan counterpart of cachedDiagram
func (r *JobRunner) cachedRoutePlan(job *types.Job) (bool, types.JobStatus) {
	if _, ok := r.artifacts.Get(r.artifactKey(job)); ok {
		return true, types.JobStatusDone
	}
	plan, err := r.store.RoutePlan(job.GraphID, job.StartStation, job.EndStation)
	if err == nil {
		r.artifacts.SetDefault(r.artifactKey(job), plan)
		return true, types.JobStatusDone
	}
	if !errors.Is(err, types.ErrNotFound) {
		r.log.Printf("job %s: %s", job.ID, err)
		return true, types.JobStatusFailed
	}
	return false, types.JobStatusProcessing
}

func (r *JobRunner) finish(job *types.Job, status types.JobStatus) {
	err := r.store.SetJobStatus(job.ID, status)
	if err != nil {
		r.log.Printf("job %s: %s", job.ID, err)
	}
	if r.Telemetry != nil {
		select {
		case r.Telemetry <- status:
		default:
		}
	}
}

func (r *JobRunner) artifactKey(job *types.Job) string {
	return fmt.Sprintf("%s#%s#%s#%s", job.Kind, job.GraphID, job.StartStation, job.EndStation)
}

func (r *JobRunner) lockKey(key string) func() {
	r.mu.Lock()
	keymu, ok := r.inflight[key]
	if !ok {
		keymu = &sync.Mutex{}
		r.inflight[key] = keymu
	}
	r.mu.Unlock()

	keymu.Lock()
	return keymu.Unlock
}
