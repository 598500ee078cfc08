package models

import (
	"fmt"
	"strings"
	"time"
)

// Required intent fields, in the order slot-filling asks for them.
const (
	FieldSource      = "source"
	FieldDestination = "destination"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldPartySize   = "partySize"
)

// RequiredFields is the fixed slot-filling priority order.
var RequiredFields = []string{
	FieldSource,
	FieldDestination,
	FieldStartDate,
	FieldEndDate,
	FieldPartySize,
}

// TripIntent is the structured form of a travel request. Fields are
// pointers/zero values until slot-filling completes them.
type TripIntent struct {
	Source      string     `bson:"source" json:"source"`
	Destination string     `bson:"destination" json:"destination"`
	StartDate   *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	PartySize   int        `bson:"partySize" json:"partySize"`
	Preferences []string   `bson:"preferences,omitempty" json:"preferences,omitempty"`
}

// MissingFields returns the required fields that are absent or invalid,
// in slot-filling priority order.
func (t *TripIntent) MissingFields(now time.Time) []string {
	var missing []string
	for _, f := range RequiredFields {
		switch f {
		case FieldSource:
			if strings.TrimSpace(t.Source) == "" {
				missing = append(missing, f)
			}
		case FieldDestination:
			if strings.TrimSpace(t.Destination) == "" {
				missing = append(missing, f)
			}
		case FieldStartDate:
			if t.StartDate == nil || t.StartDate.Before(today(now)) {
				missing = append(missing, f)
			}
		case FieldEndDate:
			if t.EndDate == nil || (t.StartDate != nil && !t.StartDate.Before(*t.EndDate)) {
				missing = append(missing, f)
			}
		case FieldPartySize:
			if t.PartySize <= 0 {
				missing = append(missing, f)
			}
		}
	}
	return missing
}

// Complete reports whether all required fields are present and valid.
func (t *TripIntent) Complete(now time.Time) bool {
	return len(t.MissingFields(now)) == 0
}

// Nights returns the number of nights between start and end date.
func (t *TripIntent) Nights() int {
	if t.StartDate == nil || t.EndDate == nil {
		return 0
	}
	n := int(t.EndDate.Sub(*t.StartDate).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// TotalDays returns the trip length in calendar days, inclusive of both
// endpoints (Dec 15 to Dec 20 is a 6-day trip).
func (t *TripIntent) TotalDays() int {
	if t.StartDate == nil || t.EndDate == nil {
		return 0
	}
	return t.Nights() + 1
}

// HasPreference reports whether any preference tag contains the given term.
func (t *TripIntent) HasPreference(term string) bool {
	term = strings.ToLower(term)
	for _, p := range t.Preferences {
		if strings.Contains(strings.ToLower(p), term) {
			return true
		}
	}
	return false
}

func (t *TripIntent) String() string {
	return fmt.Sprintf("TripIntent{%s -> %s, party=%d}", t.Source, t.Destination, t.PartySize)
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
