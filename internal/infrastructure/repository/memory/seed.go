package memory

import (
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/race"
	"github.com/pitwall/fantasy-gp/internal/domain/user"
)

// SeedSeasonID is the season every seeded record belongs to.
const SeedSeasonID = "season-2026"

// SeedDrivers returns a development driver catalog spanning all categories.
func SeedDrivers() []driver.Driver {
	return []driver.Driver{
		{ID: "drv-verner", SeasonID: SeedSeasonID, Name: "Kas Verner", TeamName: "Aurora GP", Value: 32, Categories: []driver.Category{driver.CategoryElite}, Country: "NL"},
		{ID: "drv-ortega", SeasonID: SeedSeasonID, Name: "Luca Ortega", TeamName: "Aurora GP", Value: 28, Categories: []driver.Category{driver.CategoryElite}, Country: "ES"},
		{ID: "drv-maier", SeasonID: SeedSeasonID, Name: "Jonas Maier", TeamName: "Vektor Racing", Value: 26, Categories: []driver.Category{driver.CategoryElite, driver.CategoryChallenger}, Country: "DE"},
		{ID: "drv-sato", SeasonID: SeedSeasonID, Name: "Ren Sato", TeamName: "Vektor Racing", Value: 18, Categories: []driver.Category{driver.CategoryChallenger}, Country: "JP"},
		{ID: "drv-bellin", SeasonID: SeedSeasonID, Name: "Marco Bellin", TeamName: "Scarlatti Corse", Value: 16, Categories: []driver.Category{driver.CategoryChallenger}, Country: "IT"},
		{ID: "drv-duval", SeasonID: SeedSeasonID, Name: "Theo Duval", TeamName: "Scarlatti Corse", Value: 14, Categories: []driver.Category{driver.CategoryChallenger, driver.CategoryRookie}, Country: "FR"},
		{ID: "drv-okafor", SeasonID: SeedSeasonID, Name: "Emeka Okafor", TeamName: "Meridian Motorsport", Value: 9, Categories: []driver.Category{driver.CategoryRookie}, Country: "NG"},
		{ID: "drv-lindqvist", SeasonID: SeedSeasonID, Name: "Alva Lindqvist", TeamName: "Meridian Motorsport", Value: 8, Categories: []driver.Category{driver.CategoryRookie}, Country: "SE"},
		{ID: "drv-carmo", SeasonID: SeedSeasonID, Name: "Rafael Carmo", TeamName: "Pampa Racing", Value: 7, Categories: []driver.Category{driver.CategoryRookie}, Country: "BR"},
	}
}

// SeedRaces returns a development calendar anchored on now: one round with
// its deadline already passed, one open round, and one provisional round
// without a published schedule.
func SeedRaces(now time.Time) []race.Race {
	return []race.Race{
		{
			ID:       "race-r01",
			SeasonID: SeedSeasonID,
			Round:    1,
			Location: "Jerez",
			Sessions: []race.Session{
				{Name: "Qualifying", StartsAt: now.Add(-90 * time.Hour), EndsAt: now.Add(-89 * time.Hour)},
				{Name: "Race", StartsAt: now.Add(-72 * time.Hour), EndsAt: now.Add(-70 * time.Hour)},
			},
			SubmissionDeadline: now.Add(-72 * time.Hour),
		},
		{
			ID:       "race-r02",
			SeasonID: SeedSeasonID,
			Round:    2,
			Location: "Mugello",
			Sessions: []race.Session{
				{Name: "Qualifying", StartsAt: now.Add(30 * time.Hour), EndsAt: now.Add(31 * time.Hour)},
				{Name: "Race", StartsAt: now.Add(48 * time.Hour), EndsAt: now.Add(50 * time.Hour)},
			},
			SubmissionDeadline: now.Add(48 * time.Hour),
		},
		{
			// Provisional calendar slot, no schedule published yet.
			ID:                 "race-r03",
			SeasonID:           SeedSeasonID,
			Round:              3,
			Location:           "Sepang",
			SubmissionDeadline: now.Add(28 * 24 * time.Hour),
		},
	}
}

// SeedParticipants returns one admin and one standard participant.
func SeedParticipants() []user.Participant {
	return []user.Participant{
		{ID: "usr-steward", Username: "steward", Role: user.RoleAdmin, Budget: 100, SeasonID: SeedSeasonID},
		{ID: "usr-paddockfan", Username: "paddockfan", Role: user.RoleStandard, Budget: 100, SeasonID: SeedSeasonID},
	}
}
