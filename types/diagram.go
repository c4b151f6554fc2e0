package types

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gbl08ma/sqalx"
)

// Diagram is the persisted vector diagram artifact for a
// (graph, start station, end station) key.
type Diagram struct {
	GraphID      string
	StartStation string
	EndStation   string
	SVG          string
}

// GetDiagram returns the Diagram artifact for the given key, or ErrNotFound
// if it was never computed
func GetDiagram(node sqalx.Node, graphID, startStation, endStation string) (*Diagram, error) {
	tx, err := node.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Commit() // read-only tx

	rows, err := sdb.Select("graph_id", "start_station", "end_station", "svg").
		From("diagram").
		Where(sq.Eq{
			"graph_id":      graphID,
			"start_station": startStation,
			"end_station":   endStation,
		}).
		RunWith(tx).Query()
	if err != nil {
		return nil, fmt.Errorf("GetDiagram: %s", err)
	}
	defer rows.Close()

	diagrams := []*Diagram{}
	for rows.Next() {
		var diagram Diagram
		err := rows.Scan(
			&diagram.GraphID,
			&diagram.StartStation,
			&diagram.EndStation,
			&diagram.SVG)
		if err != nil {
			return nil, fmt.Errorf("GetDiagram: %s", err)
		}
		diagrams = append(diagrams, &diagram)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetDiagram: %s", err)
	}
	if len(diagrams) == 0 {
		return nil, ErrNotFound
	}
	return diagrams[0], nil
}

// Update adds or updates the diagram. The upsert is idempotent on the
// artifact key, so concurrent writers for the same key cannot corrupt it.
func (diagram *Diagram) Update(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Insert("diagram").
		Columns("graph_id", "start_station", "end_station", "svg").
		Values(diagram.GraphID, diagram.StartStation, diagram.EndStation, diagram.SVG).
		Suffix("ON CONFLICT (graph_id, start_station, end_station) DO UPDATE SET svg = ?",
			diagram.SVG).
		RunWith(tx).Exec()

	if err != nil {
		return fmt.Errorf("AddDiagram: %s", err)
	}
	return tx.Commit()
}
