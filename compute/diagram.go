package compute

import (
	"fmt"
	"strings"

	"github.com/railrouted/trainrouter/types"
)

const (
	diagramWidth  = 7
	diagramHeight = 10
	labelStep     = 0.05
)

// BuildDiagram renders an ordered station path as an SVG document: one
// polyline visiting the stations in order, a marker circle per station and a
// staggered text label per station. Latitudes are negated so north ends up
// at the top. The output is a pure function of the input: identical paths
// always produce byte-identical markup, so numbers are written with Go's
// shortest round-trip formatting and no extra rounding.
func BuildDiagram(stations []*types.Station) string {
	if len(stations) == 0 {
		return ""
	}

	minX := stations[0].Longitude
	maxLat := stations[0].Latitude
	for _, station := range stations {
		if station.Longitude < minX {
			minX = station.Longitude
		}
		if station.Latitude > maxLat {
			maxLat = station.Latitude
		}
	}
	minX--
	minY := maxLat + 1

	var b strings.Builder
	first := stations[0]
	fmt.Fprintf(&b, "<svg viewBox=\"%v -%v %d %d\">\n", minX, minY, diagramWidth, diagramHeight)
	fmt.Fprintf(&b, "<path d=\"M %v -%v ", first.Longitude, first.Latitude)
	for _, station := range stations {
		fmt.Fprintf(&b, "L %v -%v ", station.Longitude, station.Latitude)
	}
	b.WriteString("\" stroke=\"#FF0000\" stroke-width=\"0.03\" fill=\"none\"/>\n")

	offset := labelStep
	for _, station := range stations {
		fmt.Fprintf(&b, "<text x=\"%v\" y=\"-%v\" font-size=\"0.1\">%s: (%v, %v)</text>\n",
			station.Longitude+0.1, station.Latitude+offset, station.Name, station.Longitude, station.Latitude)
		fmt.Fprintf(&b, "<circle cx=\"%v\" cy=\"-%v\" r=\"0.02\"/>\n", station.Longitude, station.Latitude)
		offset += labelStep
	}
	b.WriteString("</svg>\n")
	return b.String()
}
