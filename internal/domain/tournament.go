package domain

import "time"

type TournamentStatus string

const (
	TournamentDraft              TournamentStatus = "DRAFT"
	TournamentRegistrationOpen   TournamentStatus = "REGISTRATION_OPEN"
	TournamentRegistrationClosed TournamentStatus = "REGISTRATION_CLOSED"
	TournamentActive             TournamentStatus = "ACTIVE"
	TournamentPaused             TournamentStatus = "PAUSED"
	TournamentCompleted          TournamentStatus = "COMPLETED"
	TournamentCancelled          TournamentStatus = "CANCELLED"
)

type TournamentType string

const (
	SingleElimination TournamentType = "SINGLE_ELIMINATION"
	DoubleElimination TournamentType = "DOUBLE_ELIMINATION"
	RoundRobin        TournamentType = "ROUND_ROBIN"
	Swiss             TournamentType = "SWISS"
	Ladder            TournamentType = "LADDER"
	Custom            TournamentType = "CUSTOM"
)

// tournamentTransitions is the single source of truth for legal status moves.
// CANCELLED is reachable from every non-terminal status.
var tournamentTransitions = map[TournamentStatus][]TournamentStatus{
	TournamentDraft:              {TournamentRegistrationOpen, TournamentCancelled},
	TournamentRegistrationOpen:   {TournamentRegistrationClosed, TournamentCancelled},
	TournamentRegistrationClosed: {TournamentActive, TournamentCancelled},
	TournamentActive:             {TournamentPaused, TournamentCompleted, TournamentCancelled},
	TournamentPaused:             {TournamentActive, TournamentCancelled},
	TournamentCompleted:          {},
	TournamentCancelled:          {},
}

func (s TournamentStatus) IsTerminal() bool {
	return s == TournamentCompleted || s == TournamentCancelled
}

func (s TournamentStatus) CanTransitionTo(next TournamentStatus) bool {
	for _, allowed := range tournamentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TournamentStatus) Valid() bool {
	_, ok := tournamentTransitions[s]
	return ok
}

// Tournament is a competitive event with a capacity-bounded roster.
// The bracket blob is stored opaquely and never interpreted here.
type Tournament struct {
	ID                   uint
	Name                 string
	Description          string
	GameTitle            string
	GameCategory         string
	MaxParticipants      int
	CurrentParticipants  int
	PrizePool            float64
	PrizeCurrency        string
	EntryFee             float64
	StartDate            time.Time
	RegistrationDeadline *time.Time
	EndDate              *time.Time
	Rules                string
	Regulations          string
	Status               TournamentStatus
	Type                 TournamentType
	IsPublic             bool
	RequiresApproval     bool
	AgeRestriction       *int
	RegionRestriction    string
	BracketData          string
	CurrentRound         int
	TotalRounds          *int
	WinnerID             *uint
	RunnerUpID           *uint
	ThirdPlaceID         *uint
	OrganizerID          uint
	ModeratorIDs         []uint
	ViewCount            int64
	SpectatorCount       int64
	Deleted              bool
	DeletedAt            *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TournamentUpdate carries the descriptive fields an organizer may overwrite
// while the tournament is still modifiable.
type TournamentUpdate struct {
	Name            string
	Description     string
	GameTitle       string
	GameCategory    string
	MaxParticipants int
	StartDate       time.Time
	Rules           string
	Regulations     string
}

func (t *Tournament) IsDeleted() bool {
	return t.Deleted
}

func (t *Tournament) IsRegistrationOpen(now time.Time) bool {
	return t.Status == TournamentRegistrationOpen &&
		(t.RegistrationDeadline == nil || now.Before(*t.RegistrationDeadline)) &&
		t.CurrentParticipants < t.MaxParticipants
}

func (t *Tournament) CanParticipate(now time.Time) bool {
	return t.IsRegistrationOpen(now) && t.Status != TournamentCancelled
}

func (t *Tournament) IsFull() bool {
	return t.CurrentParticipants >= t.MaxParticipants
}

func (t *Tournament) CanModify() bool {
	return t.Status == TournamentDraft || t.Status == TournamentRegistrationOpen
}

func (t *Tournament) HasStarted(now time.Time) bool {
	return now.After(t.StartDate)
}

func (t *Tournament) IsFinished() bool {
	return t.Status == TournamentCompleted
}

// Validate checks the creation-time rules. Name uniqueness is left to the
// store's unique constraint.
func (t *Tournament) Validate() error {
	if n := len([]rune(t.Name)); n < 3 || n > 100 {
		return ValidationError{Field: "name", Reason: "must be between 3 and 100 characters"}
	}
	if t.GameTitle == "" {
		return ValidationError{Field: "gameTitle", Reason: "must not be blank"}
	}
	if t.MaxParticipants <= 0 {
		return ValidationError{Field: "maxParticipants", Reason: "must be positive"}
	}
	if t.StartDate.IsZero() {
		return ValidationError{Field: "startDate", Reason: "is required"}
	}
	return nil
}

// ValidateUpdate checks the same field rules on an update and additionally
// rejects shrinking the capacity below the current roster.
func (t *Tournament) ValidateUpdate(upd TournamentUpdate) error {
	if n := len([]rune(upd.Name)); n < 3 || n > 100 {
		return ValidationError{Field: "name", Reason: "must be between 3 and 100 characters"}
	}
	if upd.GameTitle == "" {
		return ValidationError{Field: "gameTitle", Reason: "must not be blank"}
	}
	if upd.MaxParticipants <= 0 {
		return ValidationError{Field: "maxParticipants", Reason: "must be positive"}
	}
	if upd.MaxParticipants < t.CurrentParticipants {
		return ValidationError{Field: "maxParticipants", Reason: "cannot be lower than the current participant count"}
	}
	if upd.StartDate.IsZero() {
		return ValidationError{Field: "startDate", Reason: "is required"}
	}
	return nil
}

// ApplyUpdate overwrites the mutable descriptive fields. Callers must have
// checked CanModify and ValidateUpdate first.
func (t *Tournament) ApplyUpdate(upd TournamentUpdate) {
	t.Name = upd.Name
	t.Description = upd.Description
	t.GameTitle = upd.GameTitle
	t.GameCategory = upd.GameCategory
	t.MaxParticipants = upd.MaxParticipants
	t.StartDate = upd.StartDate
	t.Rules = upd.Rules
	t.Regulations = upd.Regulations
}
