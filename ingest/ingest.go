// Package ingest turns uploaded tabular files into station and train leg
// records.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/railrouted/trainrouter/types"
)

// Expected column names of the station coordinates table
const (
	ColumnStationName = "StationName"
	ColumnLatitude    = "Latitude"
	ColumnLongitude   = "Longitude"
	ColumnDirectLinks = "Direct Links"
)

// Expected column names of the timetable
const (
	ColumnTrainNumber   = "TrainNumber"
	ColumnFromStation   = "FromStation"
	ColumnToStation     = "ToStation"
	ColumnDepartureTime = "DepartureTime"
	ColumnArrivalTime   = "ArrivalTime"
)

// ParseStations reads a station coordinates table into Station records for
// the given road graph. The first record is the header; direct links are a
// comma-and-space separated list of station names.
func ParseStations(graphID string, r io.Reader) ([]*types.Station, error) {
	records, columns, err := readTable(r,
		ColumnStationName, ColumnLatitude, ColumnLongitude, ColumnDirectLinks)
	if err != nil {
		return nil, fmt.Errorf("ParseStations: %s", err)
	}

	stations := []*types.Station{}
	for i, record := range records {
		latitude, err := strconv.ParseFloat(record[columns[ColumnLatitude]], 64)
		if err != nil {
			return nil, fmt.Errorf("ParseStations: row %d: %s", i+1, err)
		}
		longitude, err := strconv.ParseFloat(record[columns[ColumnLongitude]], 64)
		if err != nil {
			return nil, fmt.Errorf("ParseStations: row %d: %s", i+1, err)
		}
		stations = append(stations, &types.Station{
			GraphID:     graphID,
			Name:        record[columns[ColumnStationName]],
			Latitude:    latitude,
			Longitude:   longitude,
			DirectLinks: splitDirectLinks(record[columns[ColumnDirectLinks]]),
		})
	}
	return stations, nil
}

// ParseSchedule reads a timetable into TrainLeg records for the given
// timetable ID. Times must be "HH:MM" 24-hour strings. Legs that arrive
// before they depart would cross midnight, which timetables cannot
// represent, so they are rejected instead of being silently mis-ordered.
func ParseSchedule(graphID string, r io.Reader) ([]*types.TrainLeg, error) {
	records, columns, err := readTable(r,
		ColumnTrainNumber, ColumnFromStation, ColumnToStation, ColumnDepartureTime, ColumnArrivalTime)
	if err != nil {
		return nil, fmt.Errorf("ParseSchedule: %s", err)
	}

	legs := []*types.TrainLeg{}
	for i, record := range records {
		departure, err := types.ParseTime(record[columns[ColumnDepartureTime]])
		if err != nil {
			return nil, fmt.Errorf("ParseSchedule: row %d: %s", i+1, err)
		}
		arrival, err := types.ParseTime(record[columns[ColumnArrivalTime]])
		if err != nil {
			return nil, fmt.Errorf("ParseSchedule: row %d: %s", i+1, err)
		}
		if arrival.Before(departure) {
			return nil, fmt.Errorf("ParseSchedule: row %d: leg arrives before it departs (cross-midnight legs are not supported)", i+1)
		}
		legs = append(legs, &types.TrainLeg{
			GraphID:     graphID,
			Train:       record[columns[ColumnTrainNumber]],
			FromStation: record[columns[ColumnFromStation]],
			ToStation:   record[columns[ColumnToStation]],
			Departure:   departure,
			Arrival:     arrival,
		})
	}
	return legs, nil
}

// readTable reads a CSV table with a header record and returns the data
// records plus a column name to index mapping, validating that all required
// columns are present
func readTable(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("table has no header")
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, nil, fmt.Errorf("table is missing column %q", name)
		}
	}
	return rows[1:], columns, nil
}

func splitDirectLinks(links string) []string {
	if strings.TrimSpace(links) == "" {
		return []string{}
	}
	parts := strings.Split(links, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
