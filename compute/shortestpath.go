package compute

import (
	"container/heap"
	"math"
	"strings"

	"github.com/railrouted/trainrouter/types"
)

// PathStep is one station along a computed geometric path, with the
// cumulative distance from the start of the path
type PathStep struct {
	Station  *types.Station
	Distance float64
}

// distance is the planar Euclidean distance between two stations, treating
// (latitude, longitude) as Cartesian coordinates. It is not a geodesic
// distance; the raw coordinate values are the metric.
func distance(a, b *types.Station) float64 {
	return math.Sqrt(math.Pow(b.Latitude-a.Latitude, 2) + math.Pow(b.Longitude-a.Longitude, 2))
}

// ShortestPath runs Dijkstra's algorithm over the direct links of the given
// stations and returns the shortest path from startStation to endStation,
// with cumulative distances. The result is empty when either station is
// absent or no link chain connects them. Links are followed only in the
// direction they are declared in.
func ShortestPath(stations []*types.Station, startStation, endStation string) []PathStep {
	byName := make(map[string]*types.Station, len(stations))
	for _, station := range stations {
		byName[strings.TrimSpace(station.Name)] = station
	}
	if _, ok := byName[startStation]; !ok {
		return []PathStep{}
	}
	if _, ok := byName[endStation]; !ok {
		return []PathStep{}
	}

	// known distances are tracked by map presence, never by a default value
	dist := map[string]float64{startStation: 0}
	prev := map[string]string{}
	visited := map[string]bool{}

	frontier := &pathFrontier{}
	heap.Init(frontier)
	heap.Push(frontier, pathCandidate{station: startStation, distance: 0})

	for frontier.Len() > 0 {
		candidate := heap.Pop(frontier).(pathCandidate)
		if candidate.station == endStation {
			break
		}
		if visited[candidate.station] {
			continue
		}
		visited[candidate.station] = true

		current := byName[candidate.station]
		for _, linkName := range current.DirectLinks {
			linked, ok := byName[linkName]
			if !ok {
				continue
			}
			alt := dist[candidate.station] + distance(current, linked)
			if old, ok := dist[linkName]; !ok || alt < old {
				dist[linkName] = alt
				prev[linkName] = candidate.station
				heap.Push(frontier, pathCandidate{station: linkName, distance: alt})
			}
		}
	}

	if _, ok := prev[endStation]; !ok {
		return []PathStep{}
	}

	path := []PathStep{}
	current := endStation
	for {
		path = append(path, PathStep{Station: byName[current], Distance: dist[current]})
		if current == startStation {
			break
		}
		parent, ok := prev[current]
		if !ok {
			// predecessor chain does not reach the start: no path
			return []PathStep{}
		}
		current = parent
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pathCandidate struct {
	station  string
	distance float64
}

// pathFrontier is a binary min-heap of path candidates ordered by tentative
// distance. Candidates at equal distance pop in unspecified heap order;
// callers must not rely on any tie-break rule.
type pathFrontier []pathCandidate

func (f pathFrontier) Len() int           { return len(f) }
func (f pathFrontier) Less(i, j int) bool { return f[i].distance < f[j].distance }
func (f pathFrontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *pathFrontier) Push(x interface{}) {
	*f = append(*f, x.(pathCandidate))
}

func (f *pathFrontier) Pop() interface{} {
	old := *f
	n := len(old)
	candidate := old[n-1]
	*f = old[0 : n-1]
	return candidate
}
