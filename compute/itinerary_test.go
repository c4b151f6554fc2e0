package compute

import (
	"testing"

	"github.com/railrouted/trainrouter/types"
)

func TestFastestItineraryDirect(t *testing.T) {
	route := FastestItinerary(ukTimetable(), "London King's Cross", "Swansea")
	if len(route) != 1 {
		t.Fatalf("expected a single leg, got %d", len(route))
	}
	leg := route[0]
	if leg.Train != "321" {
		t.Errorf("expected train 321, got %s", leg.Train)
	}
	if leg.Departure.String() != "11:09" || leg.Arrival.String() != "12:56" {
		t.Errorf("expected 11:09 -> 12:56, got %s -> %s", leg.Departure, leg.Arrival)
	}
}

func TestFastestItineraryMultipleTrains(t *testing.T) {
	route := FastestItinerary(ukTimetable(), "London King's Cross", "Portsmouth Harbour")

	expected := []struct {
		train, fromStation, toStation, departure, arrival string
	}{
		{"313", "London King's Cross", "Norwich", "06:00", "07:48"},
		{"309", "Norwich", "Manchester Piccadilly", "07:51", "09:06"},
		{"309", "Manchester Piccadilly", "Nottingham", "09:29", "10:48"},
		{"309", "Nottingham", "Portsmouth Harbour", "11:00", "12:25"},
	}

	if len(route) != len(expected) {
		t.Fatalf("expected %d legs, got %d", len(expected), len(route))
	}
	for i, leg := range route {
		if leg.Train != expected[i].train {
			t.Errorf("leg %d: expected train %s, got %s", i, expected[i].train, leg.Train)
		}
		if leg.FromStation != expected[i].fromStation || leg.ToStation != expected[i].toStation {
			t.Errorf("leg %d: expected %s -> %s, got %s -> %s",
				i, expected[i].fromStation, expected[i].toStation, leg.FromStation, leg.ToStation)
		}
		if leg.Departure.String() != expected[i].departure || leg.Arrival.String() != expected[i].arrival {
			t.Errorf("leg %d: expected %s -> %s, got %s -> %s",
				i, expected[i].departure, expected[i].arrival, leg.Departure, leg.Arrival)
		}
	}
}

func TestItineraryChaining(t *testing.T) {
	route := FastestItinerary(ukTimetable(), "London King's Cross", "Portsmouth Harbour")
	if len(route) == 0 {
		t.Fatal("expected an itinerary")
	}
	for i := 1; i < len(route); i++ {
		if route[i].FromStation != route[i-1].ToStation {
			t.Errorf("leg %d departs from %q but previous leg arrived at %q",
				i, route[i].FromStation, route[i-1].ToStation)
		}
		if route[i].Departure.Before(route[i-1].Arrival) {
			t.Errorf("leg %d departs at %s before previous leg arrives at %s",
				i, route[i].Departure, route[i-1].Arrival)
		}
	}
}

func TestFastestItineraryNoPath(t *testing.T) {
	// nothing departs from Portsmouth Harbour
	route := FastestItinerary(ukTimetable(), "Portsmouth Harbour", "Birmingham New Street")
	if len(route) != 0 {
		t.Errorf("expected empty itinerary, got %d legs", len(route))
	}
}

func TestFastestItineraryUnknownStation(t *testing.T) {
	route := FastestItinerary(ukTimetable(), "Atlantis", "Swansea")
	if len(route) != 0 {
		t.Errorf("expected empty itinerary for unknown start, got %d legs", len(route))
	}
}

func TestFastestItineraryRespectsDeparture(t *testing.T) {
	// the only Swansea-bound leg from Cardiff departs before any leg can
	// reach Cardiff, so it must not be boarded
	legs := []*types.TrainLeg{
		{GraphID: testGraphID, Train: "1", FromStation: "A", ToStation: "Cardiff Central",
			Departure: mustParseTime("10:00"), Arrival: mustParseTime("11:00")},
		{GraphID: testGraphID, Train: "2", FromStation: "Cardiff Central", ToStation: "Swansea",
			Departure: mustParseTime("09:00"), Arrival: mustParseTime("09:45")},
	}
	route := FastestItinerary(legs, "A", "Swansea")
	if len(route) != 0 {
		t.Errorf("expected empty itinerary, got %d legs", len(route))
	}
}
