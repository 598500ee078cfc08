package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestMissingFieldsOrder(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	intent := TripIntent{}
	assert.Equal(t,
		[]string{FieldSource, FieldDestination, FieldStartDate, FieldEndDate, FieldPartySize},
		intent.MissingFields(now))

	intent.Destination = "Paris"
	intent.PartySize = 2
	assert.Equal(t,
		[]string{FieldSource, FieldStartDate, FieldEndDate},
		intent.MissingFields(now))
}

func TestMissingFieldsDateValidity(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	intent := TripIntent{
		Source:      "New York",
		Destination: "Paris",
		StartDate:   date(2026, time.February, 20),
		EndDate:     date(2026, time.February, 25),
		PartySize:   2,
	}
	// A past start date counts as missing.
	assert.Contains(t, intent.MissingFields(now), FieldStartDate)

	// A start date of today is accepted despite the clock time.
	intent.StartDate = date(2026, time.March, 1)
	intent.EndDate = date(2026, time.March, 5)
	assert.NotContains(t, intent.MissingFields(now), FieldStartDate)

	// End before start invalidates the end date only.
	intent.EndDate = date(2026, time.February, 25)
	missing := intent.MissingFields(now)
	assert.Contains(t, missing, FieldEndDate)
	assert.NotContains(t, missing, FieldStartDate)

	// Equal start and end is also invalid.
	intent.EndDate = date(2026, time.March, 1)
	assert.Contains(t, intent.MissingFields(now), FieldEndDate)
}

func TestCompleteAndCounts(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	intent := TripIntent{
		Source:      "New York",
		Destination: "Paris",
		StartDate:   date(2026, time.December, 15),
		EndDate:     date(2026, time.December, 20),
		PartySize:   2,
	}
	assert.True(t, intent.Complete(now))
	assert.Equal(t, 5, intent.Nights())
	assert.Equal(t, 6, intent.TotalDays())
}

func TestHasPreference(t *testing.T) {
	intent := TripIntent{Preferences: []string{"budget", "food"}}
	assert.True(t, intent.HasPreference("budget"))
	assert.True(t, intent.HasPreference("Food"))
	assert.False(t, intent.HasPreference("luxury"))
}
