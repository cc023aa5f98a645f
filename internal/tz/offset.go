// Package tz holds the closed catalog of UTC offsets a capture can be
// declared in, and converts local capture times back to UTC.
package tz

import (
	"fmt"
	"time"

	"github.com/mydehq/mediafilename/internal/types"
)

// Offset is a fixed distance from UTC. Values only come from the catalog.
type Offset struct {
	code     string
	positive bool
	hours    int
	minutes  int
}

// Code is the user-facing name, e.g. "UTC+5:30".
func (o Offset) Code() string { return o.code }

// Positive reports whether the zone is east of (or at) UTC.
func (o Offset) Positive() bool { return o.positive }

// Hours is the absolute hour part.
func (o Offset) Hours() int { return o.hours }

// Minutes is the absolute minute part (0, 30 or 45).
func (o Offset) Minutes() int { return o.minutes }

// Duration is the signed distance from UTC.
func (o Offset) Duration() time.Duration {
	d := time.Duration(o.hours)*time.Hour + time.Duration(o.minutes)*time.Minute
	if !o.positive {
		return -d
	}
	return d
}

// Reverse converts a local wall-clock time in this zone to UTC.
func (o Offset) Reverse(local time.Time) time.Time {
	return local.Add(-o.Duration())
}

// Apply converts a UTC time to local wall-clock time in this zone.
func (o Offset) Apply(utc time.Time) time.Time {
	return utc.Add(o.Duration())
}

// String renders the canonical signed HHMM form, e.g. "+0530" or "-1100".
func (o Offset) String() string {
	sign := "+"
	if !o.positive {
		sign = "-"
	}
	return fmt.Sprintf("%s%02d%02d", sign, o.hours, o.minutes)
}

func east(code string, h, m int) Offset { return Offset{code: code, positive: true, hours: h, minutes: m} }
func west(code string, h, m int) Offset { return Offset{code: code, positive: false, hours: h, minutes: m} }

// catalog is ordered west to east.
var catalog = []Offset{
	west("UTC-11", 11, 0),
	west("UTC-10", 10, 0),
	west("UTC-9", 9, 0),
	west("UTC-8", 8, 0),
	west("UTC-7", 7, 0),
	west("UTC-6", 6, 0),
	west("UTC-5", 5, 0),
	west("UTC-4:30", 4, 30),
	west("UTC-4", 4, 0),
	west("UTC-3", 3, 0),
	west("UTC-2", 2, 0),
	west("UTC-1", 1, 0),
	east("UTC", 0, 0),
	east("UTC+1", 1, 0),
	east("UTC+2", 2, 0),
	east("UTC+3", 3, 0),
	east("UTC+3:30", 3, 30),
	east("UTC+4", 4, 0),
	east("UTC+5", 5, 0),
	east("UTC+5:30", 5, 30),
	east("UTC+5:45", 5, 45),
	east("UTC+6", 6, 0),
	east("UTC+6:30", 6, 30),
	east("UTC+7", 7, 0),
	east("UTC+8", 8, 0),
	east("UTC+9", 9, 0),
	east("UTC+9:30", 9, 30),
	east("UTC+10", 10, 0),
	east("UTC+11", 11, 0),
	east("UTC+12", 12, 0),
	east("UTC+13", 13, 0),
	east("UTC+14", 14, 0),
}

var byCode = func() map[string]Offset {
	m := make(map[string]Offset, len(catalog))
	for _, o := range catalog {
		m[o.code] = o
	}
	return m
}()

// ForCode looks up an offset by its exact, case-sensitive code.
func ForCode(code string) (Offset, error) {
	o, ok := byCode[code]
	if !ok {
		return Offset{}, types.ErrUnknownOffset{Code: code}
	}
	return o, nil
}

// All returns the catalog, west to east.
func All() []Offset {
	out := make([]Offset, len(catalog))
	copy(out, catalog)
	return out
}

// Codes returns every accepted code, west to east.
func Codes() []string {
	codes := make([]string, len(catalog))
	for i, o := range catalog {
		codes[i] = o.code
	}
	return codes
}
