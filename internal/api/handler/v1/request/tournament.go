package request

import (
	"errors"
	"time"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/gamermajilis/tournaments-api/internal/domain"
)

// tournamentNamePattern rejects leading/trailing whitespace without
// constraining the characters in between. Lookarounds require regexp2.
var tournamentNamePattern = regexp2.MustCompile(`^(?!\s).*(?<!\s)$`, regexp2.None)

func validTournamentName(value interface{}) error {
	name, _ := value.(string)
	ok, err := tournamentNamePattern.MatchString(name)
	if err != nil || !ok {
		return errors.New("must not start or end with whitespace")
	}
	return nil
}

type CreateTournamentRequest struct {
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	GameTitle            string     `json:"game_title"`
	GameCategory         string     `json:"game_category"`
	MaxParticipants      int        `json:"max_participants"`
	PrizePool            float64    `json:"prize_pool"`
	PrizeCurrency        string     `json:"prize_currency"`
	EntryFee             float64    `json:"entry_fee"`
	StartDate            time.Time  `json:"start_date"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	Rules                string     `json:"rules"`
	Regulations          string     `json:"regulations"`
	Type                 string     `json:"type"`
	IsPublic             bool       `json:"is_public"`
	RequiresApproval     bool       `json:"requires_approval"`
	AgeRestriction       *int       `json:"age_restriction"`
	RegionRestriction    string     `json:"region_restriction"`
}

func (req *CreateTournamentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(3, 100), validation.By(validTournamentName)),
		validation.Field(&req.GameTitle, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.MaxParticipants, validation.Required, validation.Min(1)),
		validation.Field(&req.PrizePool, validation.Min(0.0)),
		validation.Field(&req.EntryFee, validation.Min(0.0)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.Description, validation.Length(0, 2000)),
	)
}

func (req *CreateTournamentRequest) ToDomain(organizerID uint) domain.Tournament {
	return domain.Tournament{
		Name:                 req.Name,
		Description:          req.Description,
		GameTitle:            req.GameTitle,
		GameCategory:         req.GameCategory,
		MaxParticipants:      req.MaxParticipants,
		PrizePool:            req.PrizePool,
		PrizeCurrency:        req.PrizeCurrency,
		EntryFee:             req.EntryFee,
		StartDate:            req.StartDate,
		RegistrationDeadline: req.RegistrationDeadline,
		Rules:                req.Rules,
		Regulations:          req.Regulations,
		Type:                 domain.TournamentType(req.Type),
		IsPublic:             req.IsPublic,
		RequiresApproval:     req.RequiresApproval,
		AgeRestriction:       req.AgeRestriction,
		RegionRestriction:    req.RegionRestriction,
		OrganizerID:          organizerID,
	}
}

type UpdateTournamentRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	GameTitle       string    `json:"game_title"`
	GameCategory    string    `json:"game_category"`
	MaxParticipants int       `json:"max_participants"`
	StartDate       time.Time `json:"start_date"`
	Rules           string    `json:"rules"`
	Regulations     string    `json:"regulations"`
}

func (req *UpdateTournamentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(3, 100), validation.By(validTournamentName)),
		validation.Field(&req.GameTitle, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.MaxParticipants, validation.Required, validation.Min(1)),
		validation.Field(&req.StartDate, validation.Required),
	)
}

func (req *UpdateTournamentRequest) ToDomain() domain.TournamentUpdate {
	return domain.TournamentUpdate{
		Name:            req.Name,
		Description:     req.Description,
		GameTitle:       req.GameTitle,
		GameCategory:    req.GameCategory,
		MaxParticipants: req.MaxParticipants,
		StartDate:       req.StartDate,
		Rules:           req.Rules,
		Regulations:     req.Regulations,
	}
}

type UpdateTournamentStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateTournamentStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required),
	)
}

type AddModeratorRequest struct {
	ModeratorID uint `json:"moderator_id"`
}

func (req *AddModeratorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ModeratorID, validation.Required, validation.Min(uint(1))),
	)
}

type ListTournamentsRequest struct {
	Status      string `form:"status"`
	OrganizerID uint   `form:"organizer_id"`
	Name        string `form:"name"`
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
}

func (req *ListTournamentsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Limit, validation.Min(0), validation.Max(100)),
		validation.Field(&req.Offset, validation.Min(0)),
	)
}
