package compute

import (
	"container/heap"

	"github.com/railrouted/trainrouter/types"
)

// FastestItinerary runs an earliest-arrival label-correcting search over the
// given timetable legs and returns the itinerary from startStation to
// endStation as an ordered sequence of legs. The traveler starts the day at
// midnight; a leg is only boardable once its departure is no earlier than
// the best known arrival at its origin. The result is empty when no
// connecting sequence of legs exists.
//
// The greedy stop when the destination pops is only sound because labels are
// monotonically non-decreasing along any leg: a leg never arrives before it
// departs (cross-midnight legs are rejected at ingestion), so no station
// popped with its best label can later improve.
func FastestItinerary(legs []*types.TrainLeg, startStation, endStation string) []*types.TrainLeg {
	outgoing := map[string][]*types.TrainLeg{}
	for _, leg := range legs {
		outgoing[leg.FromStation] = append(outgoing[leg.FromStation], leg)
	}

	type boarding struct {
		station string
		train   string
	}

	// best known arrival labels, tracked by map presence (no "never" sentinel)
	best := map[string]types.Time{startStation: types.Midnight}
	prev := map[string]boarding{}
	visited := map[string]bool{}

	frontier := &arrivalFrontier{}
	heap.Init(frontier)
	heap.Push(frontier, arrivalCandidate{station: startStation, arrival: types.Midnight})

	for frontier.Len() > 0 {
		candidate := heap.Pop(frontier).(arrivalCandidate)
		if candidate.station == endStation {
			break
		}
		if visited[candidate.station] {
			continue
		}
		visited[candidate.station] = true

		arrivedAt := best[candidate.station]
		for _, leg := range outgoing[candidate.station] {
			if leg.Departure.Before(arrivedAt) {
				continue
			}
			if label, ok := best[leg.ToStation]; !ok || leg.Arrival.Before(label) {
				best[leg.ToStation] = leg.Arrival
				prev[leg.ToStation] = boarding{station: candidate.station, train: leg.Train}
				heap.Push(frontier, arrivalCandidate{station: leg.ToStation, arrival: leg.Arrival})
			}
		}
	}

	route := []*types.TrainLeg{}
	current := endStation
	for current != startStation {
		board, ok := prev[current]
		if !ok {
			// no predecessor chain back to the start: treat as no path,
			// never return a truncated itinerary
			return []*types.TrainLeg{}
		}
		leg := findLeg(legs, board.train, board.station, current)
		if leg == nil {
			return []*types.TrainLeg{}
		}
		route = append([]*types.TrainLeg{leg}, route...)
		current = board.station
	}
	return route
}

func findLeg(legs []*types.TrainLeg, train, fromStation, toStation string) *types.TrainLeg {
	for _, leg := range legs {
		if leg.Train == train && leg.FromStation == fromStation && leg.ToStation == toStation {
			return leg
		}
	}
	return nil
}

type arrivalCandidate struct {
	station string
	arrival types.Time
}

// arrivalFrontier is a binary min-heap of stations ordered by best known
// arrival label. Equal labels pop in unspecified heap order.
type arrivalFrontier []arrivalCandidate

func (f arrivalFrontier) Len() int           { return len(f) }
func (f arrivalFrontier) Less(i, j int) bool { return f[i].arrival.Before(f[j].arrival) }
func (f arrivalFrontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *arrivalFrontier) Push(x interface{}) {
	*f = append(*f, x.(arrivalCandidate))
}

func (f *arrivalFrontier) Pop() interface{} {
	old := *f
	n := len(old)
	candidate := old[n-1]
	*f = old[0 : n-1]
	return candidate
}
