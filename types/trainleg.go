package types

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gbl08ma/sqalx"
)

// TrainLeg is one scheduled train movement between two stations of a
// timetable. Times are wall-clock values with no date.
type TrainLeg struct {
	GraphID     string
	Train       string
	FromStation string
	ToStation   string
	Departure   Time
	Arrival     Time
}

// GetTrainLegs returns a slice with all legs of the given timetable
func GetTrainLegs(node sqalx.Node, graphID string) ([]*TrainLeg, error) {
	s := sdb.Select().
		Where(sq.Eq{"graph_id": graphID})
	return getTrainLegsWithSelect(node, s)
}

func getTrainLegsWithSelect(node sqalx.Node, sbuilder sq.SelectBuilder) ([]*TrainLeg, error) {
	legs := []*TrainLeg{}

	tx, err := node.Beginx()
	if err != nil {
		return legs, err
	}
	defer tx.Commit() // read-only tx

	rows, err := sbuilder.Columns("graph_id", "train", "from_station", "to_station", "departure", "arrival").
		From("train_leg").
		RunWith(tx).Query()
	if err != nil {
		return legs, fmt.Errorf("getTrainLegsWithSelect: %s", err)
	}
	defer rows.Close()

	for rows.Next() {
		var leg TrainLeg
		err := rows.Scan(
			&leg.GraphID,
			&leg.Train,
			&leg.FromStation,
			&leg.ToStation,
			&leg.Departure,
			&leg.Arrival)
		if err != nil {
			return legs, fmt.Errorf("getTrainLegsWithSelect: %s", err)
		}
		legs = append(legs, &leg)
	}
	if err := rows.Err(); err != nil {
		return legs, fmt.Errorf("getTrainLegsWithSelect: %s", err)
	}
	return legs, nil
}

// Update adds or updates the train leg
func (leg *TrainLeg) Update(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Insert("train_leg").
		Columns("graph_id", "train", "from_station", "to_station", "departure", "arrival").
		Values(leg.GraphID, leg.Train, leg.FromStation, leg.ToStation, leg.Departure, leg.Arrival).
		Suffix("ON CONFLICT (graph_id, train, from_station, to_station) DO UPDATE SET departure = ?, arrival = ?",
			leg.Departure, leg.Arrival).
		RunWith(tx).Exec()

	if err != nil {
		return fmt.Errorf("AddTrainLeg: %s", err)
	}
	return tx.Commit()
}
