package httpapi

import (
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/driver"
	"github.com/pitwall/fantasy-gp/internal/domain/elevation"
	"github.com/pitwall/fantasy-gp/internal/domain/race"
	"github.com/pitwall/fantasy-gp/internal/domain/roster"
)

type addSelectionDriverRequest struct {
	DriverID string `json:"driver_id" validate:"required"`
}

type elevationRequest struct {
	Key string `json:"key" validate:"required"`
}

type driverUpsertRequest struct {
	SeasonID   string   `json:"season_id" validate:"required"`
	Name       string   `json:"name" validate:"required,max=100"`
	TeamName   string   `json:"team_name" validate:"required,max=100"`
	Value      int64    `json:"value" validate:"required,gt=0"`
	Categories []string `json:"categories" validate:"required,min=1,max=2,dive,required"`
	Country    string   `json:"country" validate:"omitempty,max=50"`
	ImageURL   string   `json:"image_url" validate:"omitempty,url"`
	Bio        string   `json:"bio" validate:"omitempty,max=2000"`
}

type participantUpsertRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin standard"`
	Budget   int64  `json:"budget" validate:"required,gt=0"`
	SeasonID string `json:"season_id" validate:"required"`
}

type applyResultsRequest struct {
	RaceID         string         `json:"race_id" validate:"required"`
	PointsByDriver map[string]int `json:"points_by_driver" validate:"required,min=1"`
}

type driverDTO struct {
	ID         string   `json:"id"`
	SeasonID   string   `json:"season_id"`
	Name       string   `json:"name"`
	TeamName   string   `json:"team_name"`
	Value      int64    `json:"value"`
	Categories []string `json:"categories"`
	Country    string   `json:"country,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	Bio        string   `json:"bio,omitempty"`
}

type sessionDTO struct {
	Name        string `json:"name"`
	StartsAtUTC string `json:"starts_at_utc"`
	EndsAtUTC   string `json:"ends_at_utc"`
}

type raceDTO struct {
	ID                    string       `json:"id"`
	SeasonID              string       `json:"season_id"`
	Round                 int          `json:"round"`
	Location              string       `json:"location"`
	Sessions              []sessionDTO `json:"sessions"`
	SubmissionDeadlineUTC string       `json:"submission_deadline_utc"`
	IsLocked              bool         `json:"is_locked"`
}

type eligibilityDTO struct {
	Status               string `json:"status"`
	CanSubmit            bool   `json:"can_submit"`
	Reason               string `json:"reason,omitempty"`
	TimeRemainingSeconds int64  `json:"time_remaining_seconds"`
}

type pickDTO struct {
	DriverID   string   `json:"driver_id"`
	Value      int64    `json:"value"`
	Categories []string `json:"categories"`
}

type selectionDTO struct {
	UserID      string         `json:"user_id"`
	RaceID      string         `json:"race_id"`
	RosterID    string         `json:"roster_id,omitempty"`
	Picks       []pickDTO      `json:"picks"`
	TotalValue  int64          `json:"total_value"`
	Budget      int64          `json:"budget"`
	MaxSize     int            `json:"max_size"`
	Eligibility eligibilityDTO `json:"eligibility"`
}

type rosterDTO struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RaceID       string    `json:"race_id"`
	Picks        []pickDTO `json:"picks"`
	BudgetUsed   int64     `json:"budget_used"`
	Points       int       `json:"points"`
	CreatedAtUTC string    `json:"created_at_utc"`
	UpdatedAtUTC string    `json:"updated_at_utc"`
}

type grantDTO struct {
	Token        string `json:"token"`
	ExpiresAtUTC string `json:"expires_at_utc"`
}

type elevationStatusDTO struct {
	Elevated     bool   `json:"elevated"`
	ExpiresAtUTC string `json:"expires_at_utc,omitempty"`
}

func driverToDTO(v driver.Driver) driverDTO {
	categories := make([]string, 0, len(v.Categories))
	for _, c := range v.Categories {
		categories = append(categories, string(c))
	}

	return driverDTO{
		ID:         v.ID,
		SeasonID:   v.SeasonID,
		Name:       v.Name,
		TeamName:   v.TeamName,
		Value:      v.Value,
		Categories: categories,
		Country:    v.Country,
		ImageURL:   v.ImageURL,
		Bio:        v.Bio,
	}
}

func raceToDTO(v race.Race) raceDTO {
	sessions := make([]sessionDTO, 0, len(v.Sessions))
	for _, s := range v.Sessions {
		sessions = append(sessions, sessionDTO{
			Name:        s.Name,
			StartsAtUTC: s.StartsAt.UTC().Format(time.RFC3339),
			EndsAtUTC:   s.EndsAt.UTC().Format(time.RFC3339),
		})
	}

	return raceDTO{
		ID:                    v.ID,
		SeasonID:              v.SeasonID,
		Round:                 v.Round,
		Location:              v.Location,
		Sessions:              sessions,
		SubmissionDeadlineUTC: v.SubmissionDeadline.UTC().Format(time.RFC3339),
		IsLocked:              v.IsLocked,
	}
}

func eligibilityToDTO(v race.Eligibility) eligibilityDTO {
	remaining := int64(v.TimeRemaining / time.Second)
	if remaining < 0 {
		remaining = 0
	}

	return eligibilityDTO{
		Status:               string(v.Status),
		CanSubmit:            v.CanSubmit,
		Reason:               v.Reason,
		TimeRemainingSeconds: remaining,
	}
}

func picksToDTO(picks []roster.Pick) []pickDTO {
	out := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		categories := make([]string, 0, len(p.Categories))
		for _, c := range p.Categories {
			categories = append(categories, string(c))
		}
		out = append(out, pickDTO{
			DriverID:   p.DriverID,
			Value:      p.Value,
			Categories: categories,
		})
	}
	return out
}

func selectionToDTO(sel *roster.Selection, elig race.Eligibility) selectionDTO {
	return selectionDTO{
		UserID:      sel.UserID(),
		RaceID:      sel.RaceID(),
		RosterID:    sel.RosterID(),
		Picks:       picksToDTO(sel.Picks()),
		TotalValue:  sel.TotalValue(),
		Budget:      sel.Budget(),
		MaxSize:     sel.Rules().MaxSize,
		Eligibility: eligibilityToDTO(elig),
	}
}

func rosterToDTO(v roster.Roster) rosterDTO {
	return rosterDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		RaceID:       v.RaceID,
		Picks:        picksToDTO(v.Picks),
		BudgetUsed:   v.BudgetUsed,
		Points:       v.Points,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func grantToDTO(v elevation.Grant) grantDTO {
	return grantDTO{
		Token:        v.Token,
		ExpiresAtUTC: v.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
