package types

import (
	"encoding/json"
	"testing"
)

func TestParseTime(t *testing.T) {
	parsed, err := ParseTime("07:48")
	if err != nil {
		t.Fatalf("ParseTime: %v", err)
	}
	if parsed.String() != "07:48" {
		t.Errorf("expected 07:48, got %s", parsed)
	}
}

func TestParseTimeInvalid(t *testing.T) {
	for _, s := range []string{"", "7:48", "25:00", "12:60", "noon"} {
		if _, err := ParseTime(s); err == nil {
			t.Errorf("expected an error parsing %q", s)
		}
	}
}

func TestTimeOrdering(t *testing.T) {
	early, _ := ParseTime("06:00")
	late, _ := ParseTime("18:30")
	if !early.Before(late) {
		t.Error("06:00 should be before 18:30")
	}
	if !late.After(early) {
		t.Error("18:30 should be after 06:00")
	}
	if Midnight.After(early) {
		t.Error("midnight should not be after any time of day")
	}
	if early.Before(early) {
		t.Error("a time should not be before itself")
	}
}

func TestTimeJSONRoundTrip(t *testing.T) {
	original, _ := ParseTime("11:09")
	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(encoded) != `"11:09"` {
		t.Errorf(`expected "11:09", got %s`, encoded)
	}
	var decoded Time
	err = json.Unmarshal(encoded, &decoded)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.String() != original.String() {
		t.Errorf("round trip changed %s into %s", original, decoded)
	}
}

func TestTimeScanValue(t *testing.T) {
	var scanned Time
	err := scanned.Scan([]byte("09:29"))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	value, err := scanned.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if value != "09:29" {
		t.Errorf("expected 09:29, got %v", value)
	}
}

func TestJobStatusTerminal(t *testing.T) {
	if JobStatusProcessing.Terminal() {
		t.Error("Processing must not be terminal")
	}
	if !JobStatusDone.Terminal() || !JobStatusFailed.Terminal() {
		t.Error("Done and Failed must be terminal")
	}
}
