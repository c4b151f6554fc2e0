package types

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/gbl08ma/sqalx"
)

// Station is a node of a road graph: a named point with planar coordinates
// and the outgoing direct links its source row declares. Links are
// one-directional; symmetry depends entirely on the uploaded data.
type Station struct {
	GraphID     string
	Name        string
	Latitude    float64
	Longitude   float64
	DirectLinks []string
}

// GetStations returns a slice with all stations of the given road graph
func GetStations(node sqalx.Node, graphID string) ([]*Station, error) {
	s := sdb.Select().
		Where(sq.Eq{"graph_id": graphID})
	return getStationsWithSelect(node, s)
}

func getStationsWithSelect(node sqalx.Node, sbuilder sq.SelectBuilder) ([]*Station, error) {
	stations := []*Station{}

	tx, err := node.Beginx()
	if err != nil {
		return stations, err
	}
	defer tx.Commit() // read-only tx

	rows, err := sbuilder.Columns("graph_id", "name", "latitude", "longitude", "direct_links").
		From("station").
		RunWith(tx).Query()
	if err != nil {
		return stations, fmt.Errorf("getStationsWithSelect: %s", err)
	}
	defer rows.Close()

	for rows.Next() {
		var station Station
		var links string
		err := rows.Scan(
			&station.GraphID,
			&station.Name,
			&station.Latitude,
			&station.Longitude,
			&links)
		if err != nil {
			return stations, fmt.Errorf("getStationsWithSelect: %s", err)
		}
		station.DirectLinks = splitLinks(links)
		stations = append(stations, &station)
	}
	if err := rows.Err(); err != nil {
		return stations, fmt.Errorf("getStationsWithSelect: %s", err)
	}
	return stations, nil
}

func splitLinks(links string) []string {
	if links == "" {
		return []string{}
	}
	parts := strings.Split(links, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Update adds or updates the station
func (station *Station) Update(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Insert("station").
		Columns("graph_id", "name", "latitude", "longitude", "direct_links").
		Values(station.GraphID, station.Name, station.Latitude, station.Longitude,
			strings.Join(station.DirectLinks, ",")).
		Suffix("ON CONFLICT (graph_id, name) DO UPDATE SET latitude = ?, longitude = ?, direct_links = ?",
			station.Latitude, station.Longitude, strings.Join(station.DirectLinks, ",")).
		RunWith(tx).Exec()

	if err != nil {
		return fmt.Errorf("AddStation: %s", err)
	}
	return tx.Commit()
}

// Delete deletes the station
func (station *Station) Delete(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = sdb.Delete("station").
		Where(sq.Eq{"graph_id": station.GraphID, "name": station.Name}).
		RunWith(tx).Exec()
	if err != nil {
		return fmt.Errorf("RemoveStation: %s", err)
	}
	return tx.Commit()
}
