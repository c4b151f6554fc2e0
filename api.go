package main

import (
	"github.com/railrouted/trainrouter/resource"
	"github.com/yarf-framework/yarf"
)

// apiTelemetry is middleware that counts served API requests
type apiTelemetry struct {
	yarf.Middleware
}

// PreDispatch runs before every request is dispatched to its resource
func (m *apiTelemetry) PreDispatch(c *yarf.Context) error {
	select {
	case APIrequestTelemetry <- nil:
	default:
	}
	return nil
}

// APIserver sets up and starts the API HTTP server. It blocks forever.
func APIserver() {
	y := yarf.New()

	y.Insert(new(apiTelemetry))

	y.Add("/", new(resource.Heartbeat))

	v1 := yarf.RouteGroup("/v1")

	v1.Add("/meta", new(resource.Meta).WithVersion(GitCommit, BuildDate))

	v1.Add("/datasets", new(resource.Dataset).WithNode(rootSqalxNode))
	v1.Add("/datasets/road/:id", new(resource.RoadGraph).WithNode(rootSqalxNode))
	v1.Add("/datasets/timetable/:id", new(resource.Timetable).WithNode(rootSqalxNode))

	v1.Add("/routes", new(resource.Route).WithNode(rootSqalxNode).WithRunner(jobRunner))
	v1.Add("/routes/:id", new(resource.Route).WithNode(rootSqalxNode).WithRunner(jobRunner))

	y.AddGroup(v1)

	y.Logger = webLog
	y.Start(APIListenAddress)
}
