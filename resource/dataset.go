package resource

import (
	"mime/multipart"
	"net/http"
	"strings"

	uuid "github.com/satori/go.uuid"
	"github.com/yarf-framework/yarf"

	"github.com/gbl08ma/sqalx"
	"github.com/railrouted/trainrouter/ingest"
	"github.com/railrouted/trainrouter/types"
)

// maxUploadSize bounds how much of an uploaded dataset is kept in memory
const maxUploadSize = 32 << 20

// Dataset composites resource. It accepts multipart uploads of station
// coordinate and timetable tables, assigning a fresh graph ID to each.
type Dataset struct {
	resource
}

type apiDatasetUpload struct {
	RoadGraphID string `msgpack:"roadGraphID,omitempty" json:"roadGraphID,omitempty"`
	TimetableID string `msgpack:"timetableID,omitempty" json:"timetableID,omitempty"`
}

// WithNode associates a sqalx Node with this resource
func (r *Dataset) WithNode(node sqalx.Node) *Dataset {
	r.node = node
	return r
}

// Post serves HTTP POST requests on this resource. File parts with
// "coordinates" in their name become a new road graph; parts with "schedule"
// in their name become a new timetable. Other parts are ignored.
func (r *Dataset) Post(c *yarf.Context) error {
	err := c.Request.ParseMultipartForm(maxUploadSize)
	if err != nil {
		return &yarf.CustomError{
			HTTPCode:  http.StatusBadRequest,
			ErrorMsg:  "Failed to decode multipart request",
			ErrorBody: err.Error(),
		}
	}

	response := apiDatasetUpload{}
	for _, headers := range c.Request.MultipartForm.File {
		for _, header := range headers {
			filename := strings.ToLower(header.Filename)
			switch {
			case strings.Contains(filename, "coordinates"):
				response.RoadGraphID, err = r.storeRoadGraph(header)
			case strings.Contains(filename, "schedule"):
				response.TimetableID, err = r.storeTimetable(header)
			}
			if err != nil {
				return &yarf.CustomError{
					HTTPCode:  http.StatusBadRequest,
					ErrorMsg:  "Failed to ingest " + header.Filename,
					ErrorBody: err.Error(),
				}
			}
		}
	}

	RenderData(c, response)
	return nil
}

func (r *Dataset) storeRoadGraph(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	stations, err := ingest.ParseStations(id.String(), file)
	if err != nil {
		return "", err
	}

	tx, err := r.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	for _, station := range stations {
		err = station.Update(tx)
		if err != nil {
			return "", err
		}
	}
	return id.String(), tx.Commit()
}

func (r *Dataset) storeTimetable(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	legs, err := ingest.ParseSchedule(id.String(), file)
	if err != nil {
		return "", err
	}

	tx, err := r.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	for _, leg := range legs {
		err = leg.Update(tx)
		if err != nil {
			return "", err
		}
	}
	return id.String(), tx.Commit()
}

// RoadGraph composites resource. It exposes the persisted records of a road
// graph for inspection.
type RoadGraph struct {
	resource
}

type apiStation struct {
	Name        string   `msgpack:"name" json:"name"`
	Latitude    float64  `msgpack:"latitude" json:"latitude"`
	Longitude   float64  `msgpack:"longitude" json:"longitude"`
	DirectLinks []string `msgpack:"directLinks" json:"directLinks"`
}

// WithNode associates a sqalx Node with this resource
func (r *RoadGraph) WithNode(node sqalx.Node) *RoadGraph {
	r.node = node
	return r
}

// Get serves HTTP GET requests on this resource
func (r *RoadGraph) Get(c *yarf.Context) error {
	tx, err := r.Beginx()
	if err != nil {
		return err
	}
	defer tx.Commit() // read-only tx

	stations, err := types.GetStations(tx, c.Param("id"))
	if err != nil {
		return err
	}

	apistations := make([]apiStation, len(stations))
	for i, station := range stations {
		apistations[i] = apiStation{
			Name:        station.Name,
			Latitude:    station.Latitude,
			Longitude:   station.Longitude,
			DirectLinks: station.DirectLinks,
		}
	}
	RenderData(c, apistations)
	return nil
}

// Timetable composites resource. It exposes the persisted records of a
// timetable for inspection.
type Timetable struct {
	resource
}

type apiTrainLeg struct {
	Train         string     `msgpack:"train" json:"train"`
	FromStation   string     `msgpack:"fromStation" json:"fromStation"`
	ToStation     string     `msgpack:"toStation" json:"toStation"`
	DepartureTime types.Time `msgpack:"departureTime" json:"departureTime"`
	ArrivalTime   types.Time `msgpack:"arrivalTime" json:"arrivalTime"`
}

// WithNode associates a sqalx Node with this resource
func (r *Timetable) WithNode(node sqalx.Node) *Timetable {
	r.node = node
	return r
}

// Get serves HTTP GET requests on this resource
func (r *Timetable) Get(c *yarf.Context) error {
	tx, err := r.Beginx()
	if err != nil {
		return err
	}
	defer tx.Commit() // read-only tx

	legs, err := types.GetTrainLegs(tx, c.Param("id"))
	if err != nil {
		return err
	}

	apilegs := make([]apiTrainLeg, len(legs))
	for i, leg := range legs {
		apilegs[i] = apiTrainLeg{
			Train:         leg.Train,
			FromStation:   leg.FromStation,
			ToStation:     leg.ToStation,
			DepartureTime: leg.Departure,
			ArrivalTime:   leg.Arrival,
		}
	}
	RenderData(c, apilegs)
	return nil
}
