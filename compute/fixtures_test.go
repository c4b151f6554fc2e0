package compute

import (
	"github.com/railrouted/trainrouter/types"
)

const testGraphID = "test"

func ukStations() []*types.Station {
	linked := func(name string, latitude, longitude float64, links ...string) *types.Station {
		return &types.Station{
			GraphID:     testGraphID,
			Name:        name,
			Latitude:    latitude,
			Longitude:   longitude,
			DirectLinks: links,
		}
	}
	return []*types.Station{
		linked("London King's Cross", 51.5308, -0.1224, "Bristol Temple Meads", "Birmingham New Street"),
		linked("Bristol Temple Meads", 51.4492, -2.5814, "Cardiff Central", "London King's Cross", "Southampton Central"),
		linked("Cardiff Central", 51.4757, -3.1791, "Swansea", "Bristol Temple Meads"),
		linked("Swansea", 51.6251, -3.9409, "Cardiff Central"),
		linked("Birmingham New Street", 52.4778, -1.8990, "London King's Cross", "Cardiff Central"),
		linked("Southampton Central", 50.9075, -1.4139, "Bristol Temple Meads"),
		// not linked to anything; unreachable by road
		linked("Norwich", 52.6278, 1.2983),
	}
}

func ukTimetable() []*types.TrainLeg {
	leg := func(train, fromStation, toStation, departure, arrival string) *types.TrainLeg {
		return &types.TrainLeg{
			GraphID:     testGraphID,
			Train:       train,
			FromStation: fromStation,
			ToStation:   toStation,
			Departure:   mustParseTime(departure),
			Arrival:     mustParseTime(arrival),
		}
	}
	return []*types.TrainLeg{
		leg("301", "Birmingham New Street", "Norwich", "06:00", "07:51"),
		leg("313", "London King's Cross", "Norwich", "06:00", "07:48"),
		leg("309", "Norwich", "Manchester Piccadilly", "07:51", "09:06"),
		leg("309", "Manchester Piccadilly", "Nottingham", "09:29", "10:48"),
		leg("309", "Nottingham", "Portsmouth Harbour", "11:00", "12:25"),
		leg("321", "London King's Cross", "Swansea", "11:09", "12:56"),
		leg("305", "London King's Cross", "Leeds", "06:30", "08:20"),
		leg("307", "Leeds", "Portsmouth Harbour", "13:00", "16:10"),
		leg("311", "Norwich", "Nottingham", "09:45", "11:10"),
		leg("315", "Manchester Piccadilly", "Swansea", "10:00", "13:30"),
	}
}

func mustParseTime(s string) types.Time {
	t, err := types.ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}
