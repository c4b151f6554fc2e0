package types

import (
	"github.com/gbl08ma/sqalx"
)

// DBStore exposes the persistence operations of this package behind plain
// method calls, so consumers that should not know about transactions (like
// the job runner) can be handed a narrow surface.
type DBStore struct {
	node sqalx.Node
}

// NewDBStore returns a DBStore backed by the given sqalx node
func NewDBStore(node sqalx.Node) *DBStore {
	return &DBStore{node: node}
}

// Stations returns the stations of the given road graph
func (s *DBStore) Stations(graphID string) ([]*Station, error) {
	return GetStations(s.node, graphID)
}

// TrainLegs returns the legs of the given timetable
func (s *DBStore) TrainLegs(graphID string) ([]*TrainLeg, error) {
	return GetTrainLegs(s.node, graphID)
}

// Job returns the job with the given ID
func (s *DBStore) Job(id string) (*Job, error) {
	return GetJob(s.node, id)
}

// SaveJob adds or updates a job
func (s *DBStore) SaveJob(job *Job) error {
	return job.Update(s.node)
}

// SetJobStatus transitions the given job to the given status
func (s *DBStore) SetJobStatus(id string, status JobStatus) error {
	job, err := GetJob(s.node, id)
	if err != nil {
		return err
	}
	return job.SetStatus(s.node, status)
}

// RoutePlan returns the itinerary artifact for the given key
func (s *DBStore) RoutePlan(graphID, startStation, endStation string) (*RoutePlan, error) {
	return GetRoutePlan(s.node, graphID, startStation, endStation)
}

// SaveRoutePlan adds or updates an itinerary artifact
func (s *DBStore) SaveRoutePlan(plan *RoutePlan) error {
	return plan.Update(s.node)
}

// Diagram returns the diagram artifact for the given key
func (s *DBStore) Diagram(graphID, startStation, endStation string) (*Diagram, error) {
	return GetDiagram(s.node, graphID, startStation, endStation)
}

// SaveDiagram adds or updates a diagram artifact
func (s *DBStore) SaveDiagram(diagram *Diagram) error {
	return diagram.Update(s.node)
}
