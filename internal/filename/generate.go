package filename

import "time"

// stampLayout renders the UTC capture instant at the front of generated names.
const stampLayout = "2006-01-02_150405"

// Offset converts a local capture time back to UTC and renders itself as the
// signed HHMM form embedded in generated names.
type Offset interface {
	Reverse(local time.Time) time.Time
	String() string
}

// Generate builds the new name for a file captured at local wall-clock time
// captured in the zone described by offset. The original name is kept intact
// after the timestamp prefix so that names sort chronologically.
func Generate(captured time.Time, offset Offset, original string) string {
	utc := offset.Reverse(captured)
	return utc.Format(stampLayout) + "utc_tz" + offset.String() + "_" + original
}
