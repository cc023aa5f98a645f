package metadata

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mydehq/mediafilename/internal/types"
)

// Profile names the rule used to pick a capture time from a file's tags.
type Profile string

const (
	// ProfileEXIF reads DateTimeOriginal, as written by still cameras.
	ProfileEXIF Profile = "exif"
	// ProfileQuickTime reads MediaCreateDate, or CreationDate for iPhone
	// footage whose other date fields are stored in UTC.
	ProfileQuickTime Profile = "quicktime"
)

const (
	exifLayout      = "2006:01:02 15:04:05"
	exifZonedLayout = "2006:01:02 15:04:05-07:00"
	zeroDate        = "0000:00:00 00:00:00"
)

// DefaultProfiles is the built-in extension dispatch table. Keys are
// lower-case extensions without the dot.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		"jpg":  ProfileEXIF,
		"jpeg": ProfileEXIF,
		"nef":  ProfileEXIF,
		"mov":  ProfileQuickTime,
	}
}

// ParseProfile validates a profile name.
func ParseProfile(name string) (Profile, bool) {
	switch p := Profile(strings.ToLower(strings.TrimSpace(name))); p {
	case ProfileEXIF, ProfileQuickTime:
		return p, true
	default:
		return "", false
	}
}

// MergeProfiles overlays configured extension mappings on the defaults.
func MergeProfiles(overrides map[string]string) (map[string]Profile, error) {
	table := DefaultProfiles()
	exts := make([]string, 0, len(overrides))
	for ext := range overrides {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		p, ok := ParseProfile(overrides[ext])
		if !ok {
			return nil, types.ErrUnknownProfile{Extension: ext, Name: overrides[ext]}
		}
		table[strings.ToLower(strings.TrimPrefix(ext, "."))] = p
	}
	return table, nil
}

func (p Profile) extract(tags Tags) (time.Time, bool, error) {
	switch p {
	case ProfileEXIF:
		t, ok := parseLocal(tags.DateTimeOriginal)
		return t, ok, nil
	case ProfileQuickTime:
		if tags.Make == "Apple" && strings.HasPrefix(tags.Model, "iPhone") && tags.CreationDate != "" {
			t, ok := parseLocal(tags.CreationDate)
			return t, ok, nil
		}
		t, ok := parseLocal(tags.MediaCreateDate)
		return t, ok, nil
	default:
		return time.Time{}, false, fmt.Errorf("unsupported profile %q", p)
	}
}

// parseLocal reads an exiftool date as a wall-clock time. A trailing zone, if
// present, is dropped: the wall clock is what gets converted with the
// user-supplied offset. Missing, zeroed or garbled dates yield ok=false.
func parseLocal(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasPrefix(value, zeroDate) {
		return time.Time{}, false
	}

	if t, err := time.Parse(exifZonedLayout, value); err == nil {
		return wallClock(t), true
	}
	if len(value) > len(exifLayout) {
		// sub-seconds or a "Z" suffix
		value = value[:len(exifLayout)]
	}
	t, err := time.Parse(exifLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
