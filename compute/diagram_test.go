package compute

import (
	"strings"
	"testing"

	"github.com/railrouted/trainrouter/types"
)

func station(name string, latitude, longitude float64) *types.Station {
	return &types.Station{GraphID: testGraphID, Name: name, Latitude: latitude, Longitude: longitude}
}

func TestBuildDiagramPolyline(t *testing.T) {
	stations := []*types.Station{
		station("London King's Cross", 51.5308, -0.1224),
		station("Nottingham", 52.9476, -1.1469),
		station("Leeds", 53.7944, -1.5479),
		station("Liverpool Lime Street", 53.4072, -2.9778),
	}

	svg := BuildDiagram(stations)
	want := `<path d="M -0.1224 -51.5308 L -0.1224 -51.5308 L -1.1469 -52.9476 L -1.5479 -53.7944 L -2.9778 -53.4072 "`
	if !strings.Contains(svg, want) {
		t.Errorf("diagram does not contain %q:\n%s", want, svg)
	}
}

func TestBuildDiagramPolylineNorthbound(t *testing.T) {
	stations := []*types.Station{
		station("London King's Cross", 51.5308, -0.1224),
		station("York", 53.9586, -1.0906),
		station("Edinburgh Waverley", 55.9533, -3.1883),
	}

	svg := BuildDiagram(stations)
	want := `<path d="M -0.1224 -51.5308 L -0.1224 -51.5308 L -1.0906 -53.9586 L -3.1883 -55.9533 "`
	if !strings.Contains(svg, want) {
		t.Errorf("diagram does not contain %q:\n%s", want, svg)
	}
}

func TestBuildDiagramMarkers(t *testing.T) {
	stations := []*types.Station{
		station("London King's Cross", 51.5308, -0.1224),
		station("Bristol Temple Meads", 51.4492, -2.5814),
		station("Cardiff Central", 51.4757, -3.1791),
		station("Swansea", 51.6251, -3.9409),
	}

	svg := BuildDiagram(stations)
	want := `path d="M -0.1224 -51.5308 L -0.1224 -51.5308 L -2.5814 -51.4492 L -3.1791 -51.4757 L -3.9409 -51.6251 "`
	if !strings.Contains(svg, want) {
		t.Errorf("diagram does not contain %q:\n%s", want, svg)
	}
	for _, marker := range []string{
		`<circle cx="-0.1224" cy="-51.5308" r="0.02"/>`,
		`<circle cx="-3.9409" cy="-51.6251" r="0.02"/>`,
	} {
		if !strings.Contains(svg, marker) {
			t.Errorf("diagram does not contain %q", marker)
		}
	}
	if !strings.Contains(svg, "Swansea: (-3.9409, 51.6251)") {
		t.Errorf("diagram does not label Swansea:\n%s", svg)
	}
}

func TestBuildDiagramDeterministic(t *testing.T) {
	stations := []*types.Station{
		station("London King's Cross", 51.5308, -0.1224),
		station("Bristol Temple Meads", 51.4492, -2.5814),
	}
	first := BuildDiagram(stations)
	second := BuildDiagram(stations)
	if first != second {
		t.Error("identical input produced different markup")
	}
}

func TestBuildDiagramEmpty(t *testing.T) {
	if svg := BuildDiagram([]*types.Station{}); svg != "" {
		t.Errorf("expected empty markup for empty path, got %q", svg)
	}
}
