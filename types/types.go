package types

import (
	"database/sql/driver"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	msgpack "gopkg.in/vmihailenco/msgpack.v2"
)

var sdb sq.StatementBuilderType

func init() {
	sdb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

var timeLayout = "15:04"

// ErrTimeParse is returned when time parsing fails
var ErrTimeParse = errors.New(`TimeParseError: should be a string formatted as "15:04"`)

// Time is a wall-clock time of day with minute precision, as used by
// timetables. It carries no date component, so spans that cross midnight
// cannot be represented.
type Time time.Time

var _ msgpack.CustomEncoder = (*Time)(nil)
var _ msgpack.CustomDecoder = (*Time)(nil)

// Midnight is the earliest representable time of day
var Midnight = Time(time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC))

// ParseTime parses a "HH:MM" 24-hour string
func ParseTime(s string) (Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return Midnight, ErrTimeParse
	}
	return Time(t), nil
}

func (t Time) String() string {
	return time.Time(t).Format(timeLayout)
}

// Before reports whether t is before other
func (t Time) Before(other Time) bool {
	return time.Time(t).Before(time.Time(other))
}

// After reports whether t is after other
func (t Time) After(other Time) bool {
	return time.Time(t).After(time.Time(other))
}

// MarshalJSON implements json.Marshaler
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Time) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) != len(timeLayout)+2 {
		return ErrTimeParse
	}
	ret, err := ParseTime(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = ret
	return nil
}

// EncodeMsgpack implements the msgpack.CustomEncoder interface
func (t Time) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(t.String())
}

// DecodeMsgpack implements the msgpack.CustomDecoder interface
func (t *Time) DecodeMsgpack(dec *msgpack.Decoder) error {
	var s string
	err := dec.Decode(&s)
	if err != nil {
		return err
	}
	ret, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = ret
	return nil
}

// Scan implements the sql.Scanner interface.
func (t *Time) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return errors.New("Scan: Invalid val type for scanning")
	}
	ret, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = ret
	return nil
}

// Value implements the driver.Valuer interface.
func (t Time) Value() (driver.Value, error) {
	return t.String(), nil
}
