package resource

import (
	"errors"
	"net/http"
	"strings"

	"github.com/yarf-framework/yarf"

	"github.com/gbl08ma/sqalx"
	"github.com/railrouted/trainrouter/compute"
	"github.com/railrouted/trainrouter/types"
)

// Route composites resource. Post submits an asynchronous route computation;
// Get polls a job and serves its artifact once the job is Done.
type Route struct {
	resource
	runner *compute.JobRunner
}

type apiRouteRequest struct {
	RoadGraphID  string `msgpack:"roadGraphID" json:"roadGraphID"`
	TimetableID  string `msgpack:"timetableID" json:"timetableID"`
	StartStation string `msgpack:"startStation" json:"startStation"`
	EndStation   string `msgpack:"endStation" json:"endStation"`
}

type apiRouteResponse struct {
	JobID string `msgpack:"jobID" json:"jobID"`
}

type apiJobStatus struct {
	JobID  string          `msgpack:"jobID" json:"jobID"`
	Kind   types.JobKind   `msgpack:"kind" json:"kind"`
	Status types.JobStatus `msgpack:"status" json:"status"`
}

// WithNode associates a sqalx Node with this resource
func (r *Route) WithNode(node sqalx.Node) *Route {
	r.node = node
	return r
}

// WithRunner associates a JobRunner with this resource
func (r *Route) WithRunner(runner *compute.JobRunner) *Route {
	r.runner = runner
	return r
}

// Post serves HTTP POST requests on this resource. The Accept header selects
// the artifact kind: image/svg+xml requests a diagram computed over the road
// graph, anything else an itinerary computed over the timetable.
func (r *Route) Post(c *yarf.Context) error {
	var request apiRouteRequest
	err := r.DecodeRequest(c, &request)
	if err != nil {
		return err
	}

	if request.StartStation == "" || request.EndStation == "" {
		return &yarf.CustomError{
			HTTPCode:  http.StatusBadRequest,
			ErrorMsg:  "start and end stations can't be empty",
			ErrorBody: "start and end stations can't be empty",
		}
	}

	kind := types.JobKindRoute
	graphID := request.TimetableID
	if strings.Contains(c.Request.Header.Get("Accept"), "image/svg+xml") {
		kind = types.JobKindDiagram
		graphID = request.RoadGraphID
	}
	if graphID == "" {
		msg := "can't compute an itinerary without a timetable ID"
		if kind == types.JobKindDiagram {
			msg = "can't generate a diagram without a road graph ID"
		}
		return &yarf.CustomError{
			HTTPCode:  http.StatusBadRequest,
			ErrorMsg:  msg,
			ErrorBody: msg,
		}
	}

	jobID, err := r.runner.Submit(kind, graphID, request.StartStation, request.EndStation)
	if err != nil {
		return err
	}

	RenderData(c, apiRouteResponse{JobID: jobID})
	return nil
}

// Get serves HTTP GET requests on this resource
func (r *Route) Get(c *yarf.Context) error {
	tx, err := r.Beginx()
	if err != nil {
		return err
	}
	defer tx.Commit() // read-only tx

	job, err := types.GetJob(tx, c.Param("id"))
	if errors.Is(err, types.ErrNotFound) {
		return &yarf.CustomError{
			HTTPCode:  http.StatusNotFound,
			ErrorMsg:  "no job with the specified ID",
			ErrorBody: "no job with the specified ID",
		}
	}
	if err != nil {
		return err
	}

	if job.Status != types.JobStatusDone {
		RenderData(c, apiJobStatus{
			JobID:  job.ID,
			Kind:   job.Kind,
			Status: job.Status,
		})
		return nil
	}

	switch job.Kind {
	case types.JobKindDiagram:
		diagram, err := types.GetDiagram(tx, job.GraphID, job.StartStation, job.EndStation)
		if err != nil {
			return err
		}
		c.Response.Header().Set("Content-Type", "image/svg+xml")
		c.Response.Header().Set("Content-Disposition", `attachment; filename="diagram.svg"`)
		c.Render(diagram.SVG)
		return nil
	default:
		plan, err := types.GetRoutePlan(tx, job.GraphID, job.StartStation, job.EndStation)
		if err != nil {
			return err
		}
		apilegs := make([]apiTrainLeg, len(plan.Legs))
		for i, leg := range plan.Legs {
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
}
