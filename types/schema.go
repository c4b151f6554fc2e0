package types

import (
	"fmt"

	"github.com/gbl08ma/sqalx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS station (
		graph_id VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		direct_links TEXT NOT NULL,
		PRIMARY KEY (graph_id, name)
	);`,
	`CREATE TABLE IF NOT EXISTS train_leg (
		graph_id VARCHAR(255) NOT NULL,
		train VARCHAR(255) NOT NULL,
		from_station VARCHAR(255) NOT NULL,
		to_station VARCHAR(255) NOT NULL,
		departure VARCHAR(255) NOT NULL,
		arrival VARCHAR(255) NOT NULL,
		PRIMARY KEY (graph_id, train, from_station, to_station)
	);`,
	`CREATE TABLE IF NOT EXISTS job (
		id VARCHAR(255) NOT NULL,
		kind VARCHAR(255) NOT NULL,
		status VARCHAR(255) NOT NULL,
		graph_id VARCHAR(255) NOT NULL,
		start_station VARCHAR(255) NOT NULL,
		end_station VARCHAR(255) NOT NULL,
		PRIMARY KEY (id)
	);`,
	`CREATE TABLE IF NOT EXISTS route_plan (
		graph_id VARCHAR(255) NOT NULL,
		start_station VARCHAR(255) NOT NULL,
		end_station VARCHAR(255) NOT NULL,
		legs TEXT NOT NULL,
		PRIMARY KEY (graph_id, start_station, end_station)
	);`,
	`CREATE TABLE IF NOT EXISTS diagram (
		graph_id VARCHAR(255) NOT NULL,
		start_station VARCHAR(255) NOT NULL,
		end_station VARCHAR(255) NOT NULL,
		svg TEXT NOT NULL,
		PRIMARY KEY (graph_id, start_station, end_station)
	);`,
}

// CreateSchema creates the tables this service needs, if they do not exist
func CreateSchema(node sqalx.Node) error {
	tx, err := node.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, statement := range schemaStatements {
		_, err := tx.Exec(statement)
		if err != nil {
			return fmt.Errorf("CreateSchema: %s", err)
		}
	}
	return tx.Commit()
}
