package resource

import (
	"github.com/yarf-framework/yarf"
)

// Meta composites resource
type Meta struct {
	resource
	version   string
	buildDate string
}

// apiMeta contains information about this API endpoint
type apiMeta struct {
	// Whether this endpoint is up
	Up bool `msgpack:"up" json:"up"`

	// The commit this server was built from
	Version string `msgpack:"version" json:"version"`

	// When this server was built
	BuildDate string `msgpack:"buildDate" json:"buildDate"`
}

// WithVersion associates build information with this resource
func (r *Meta) WithVersion(version, buildDate string) *Meta {
	r.version = version
	r.buildDate = buildDate
	return r
}

// Get serves HTTP GET requests on this resource
func (r *Meta) Get(c *yarf.Context) error {
	RenderData(c, apiMeta{
		Up:        true,
		Version:   r.version,
		BuildDate: r.buildDate,
	})
	return nil
}

// Heartbeat composites resource
type Heartbeat struct {
	resource
}

// Get serves HTTP GET requests on this resource
func (r *Heartbeat) Get(c *yarf.Context) error {
	c.Render("heartbeat")
	return nil
}
