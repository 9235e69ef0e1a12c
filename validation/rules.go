// Package validation checks sighting payloads before anything is written.
// All functions are pure apart from reading the configured clock.
package validation

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/beast-watch/api-go/models"
)

// Field keys used in validation error maps. Lat and lng share the location key.
const (
	FieldAnimalType = "animal_type"
	FieldSightedAt  = "sighted_at"
	FieldLocation   = "location"
	FieldNote       = "note"
	FieldStatus     = "status"
)

// fieldOrder decides which error is reported first.
var fieldOrder = []string{FieldAnimalType, FieldSightedAt, FieldLocation, FieldNote, FieldStatus}

const (
	DefaultMaxPastYears  = 2
	DefaultMaxNoteLength = 100
)

// DefaultAnimalTypes is the allow-list used when none is configured.
var DefaultAnimalTypes = []string{"bear", "boar", "deer", "monkey", "serow", "fox", "raccoon_dog", "other"}

const (
	MsgAnimalTypeRequired = "animal type is required"
	MsgAnimalTypeInvalid  = "animal type is not supported"
	MsgSightedAtRequired  = "sighted at is required"
	MsgSightedAtInvalid   = "sighted at is not a valid date"
	MsgSightedAtFuture    = "future date not allowed"
	MsgLocationRequired   = "location is required"
	MsgLocationInvalid    = "location is invalid"
	MsgStatusInvalid      = "status is invalid"
)

func MsgSightedAtTooOld(years int) string {
	return fmt.Sprintf("sightings older than %d years are not accepted", years)
}

func MsgNoteTooLong(maxLength, current int) string {
	return fmt.Sprintf("note must be at most %d characters (currently %d)", maxLength, current)
}

// sightedAtLayouts are tried in order; the last two cover HTML date inputs.
var sightedAtLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// ParseSightedAt parses a sighting time. Layouts without a zone are read as UTC.
func ParseSightedAt(raw string) (time.Time, error) {
	return ParseSightedAtIn(raw, time.UTC)
}

// ParseSightedAtIn parses a sighting time, reading layouts without a zone in loc.
func ParseSightedAtIn(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range sightedAtLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}

func (v *Validator) checkAnimalType(value string) string {
	if _, ok := v.allowed[value]; !ok {
		return MsgAnimalTypeInvalid
	}
	return ""
}

func (v *Validator) checkSightedAt(raw string) string {
	sightedAt, err := v.ParseSightedAt(raw)
	if err != nil {
		return MsgSightedAtInvalid
	}

	now := v.now()
	if sightedAt.After(now) {
		return MsgSightedAtFuture
	}
	if sightedAt.Before(now.AddDate(-v.rules.MaxPastYears, 0, 0)) {
		return MsgSightedAtTooOld(v.rules.MaxPastYears)
	}
	return ""
}

func checkLocation(lat, lng float64) string {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return MsgLocationInvalid
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return MsgLocationInvalid
	}
	return ""
}

func (v *Validator) checkNote(note string) string {
	if n := utf8.RuneCountInString(note); n > v.rules.MaxNoteLength {
		return MsgNoteTooLong(v.rules.MaxNoteLength, n)
	}
	return ""
}

func checkStatus(status models.Status) string {
	if !status.Reviewable() {
		return MsgStatusInvalid
	}
	return ""
}
