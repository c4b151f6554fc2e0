package types

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gbl08ma/sqalx"
)

// RoutePlan is the persisted itinerary artifact for a
// (graph, start station, end station) key: the ordered legs of the fastest
// journey found over that timetable.
type RoutePlan struct {
	GraphID      string
	StartStation string
	EndStation   string
	Legs         []*TrainLeg
}

// GetRoutePlan returns the RoutePlan artifact for the given key, or
// ErrNotFound if it was never computed
func GetRoutePlan(node sqalx.Node, graphID, startStation, endStation string) (*RoutePlan, error) {
	tx, err := node.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Commit() // read-only tx

	rows, err := sdb.Select("graph_id", "start_station", "end_station", "legs").
		From("route_plan").
		Where(sq.Eq{
			"graph_id":      graphID,
			"start_station": startStation,
			"end_station":   endStation,
		}).
		RunWith(tx).Query()
	if err != nil {
		return nil, fmt.Errorf("GetRoutePlan: %s", err)
	}
	defer rows.Close()

	plans := []*RoutePlan{}
	for rows.Next() {
		var plan RoutePlan
		var legsJSON string
		err := rows.Scan(
			&plan.GraphID,
			&plan.StartStation,
			&plan.EndStation,
			&legsJSON)
		if err != nil {
			return nil, fmt.Errorf("GetRoutePlan: %s", err)
		}
		err = json.Unmarshal([]byte(legsJSON), &plan.Legs)
		if err != nil {
			return nil, fmt.Errorf("GetRoutePlan: %s", err)
		}
		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetRoutePlan: %s", err)
	}
	if len(plans) == 0 {
		return nil, ErrNotFound
	}
	return plans[0], nil
}

// Update adds or updates the route plan. The upsert is idempotent on the
// artifact key, so concurrent writers for the same key cannot corrupt it.
func (plan *RoutePlan) Update(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	legsJSON, err := json.Marshal(plan.Legs)
	if err != nil {
		return fmt.Errorf("AddRoutePlan: %s", err)
	}

	_, err = sdb.Insert("route_plan").
		Columns("graph_id", "start_station", "end_station", "legs").
		Values(plan.GraphID, plan.StartStation, plan.EndStation, string(legsJSON)).
		Suffix("ON CONFLICT (graph_id, start_station, end_station) DO UPDATE SET legs = ?",
			string(legsJSON)).
		RunWith(tx).Exec()

	if err != nil {
		return fmt.Errorf("AddRoutePlan: %s", err)
	}
	return tx.Commit()
}
