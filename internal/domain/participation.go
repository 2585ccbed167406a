package domain

import "time"

type ParticipationStatus string

const (
	ParticipationRegistered   ParticipationStatus = "REGISTERED"
	ParticipationConfirmed    ParticipationStatus = "CONFIRMED"
	ParticipationCheckedIn    ParticipationStatus = "CHECKED_IN"
	ParticipationActive       ParticipationStatus = "ACTIVE"
	ParticipationEliminated   ParticipationStatus = "ELIMINATED"
	ParticipationWithdrawn    ParticipationStatus = "WITHDRAWN"
	ParticipationDisqualified ParticipationStatus = "DISQUALIFIED"
	ParticipationCompleted    ParticipationStatus = "COMPLETED"
)

// participationTransitions centralizes the legal status moves. WITHDRAWN and
// DISQUALIFIED are reachable from every non-terminal status.
var participationTransitions = map[ParticipationStatus][]ParticipationStatus{
	ParticipationRegistered:   {ParticipationConfirmed, ParticipationWithdrawn, ParticipationDisqualified},
	ParticipationConfirmed:    {ParticipationCheckedIn, ParticipationWithdrawn, ParticipationDisqualified},
	ParticipationCheckedIn:    {ParticipationActive, ParticipationWithdrawn, ParticipationDisqualified},
	ParticipationActive:       {ParticipationEliminated, ParticipationCompleted, ParticipationWithdrawn, ParticipationDisqualified},
	ParticipationEliminated:   {},
	ParticipationWithdrawn:    {},
	ParticipationDisqualified: {},
	ParticipationCompleted:    {},
}

func (s ParticipationStatus) IsTerminal() bool {
	switch s {
	case ParticipationEliminated, ParticipationWithdrawn, ParticipationDisqualified, ParticipationCompleted:
		return true
	}
	return false
}

func (s ParticipationStatus) CanTransitionTo(next ParticipationStatus) bool {
	for _, allowed := range participationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ParticipationStatus) Valid() bool {
	_, ok := participationTransitions[s]
	return ok
}

// Participation is one participant's registration record and match history
// within a single tournament. At most one row exists per
// (tournament, participant) pair.
type Participation struct {
	ID                     uint
	TournamentID           uint
	ParticipantID          uint
	Status                 ParticipationStatus
	RegistrationDate       time.Time
	SeedNumber             *int
	BracketPosition        *int
	MatchesPlayed          int
	MatchesWon             int
	MatchesLost            int
	Points                 int
	FinalPlacement         *int
	TeamName               string
	ParticipantNotes       string
	CheckedIn              bool
	CheckInTime            *time.Time
	Disqualified           bool
	DisqualificationReason string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (p *Participation) IsActive() bool {
	return p.Status == ParticipationConfirmed && !p.Disqualified
}

// WinRate is 0 when no matches have been played.
func (p *Participation) WinRate() float64 {
	if p.MatchesPlayed == 0 {
		return 0
	}
	return float64(p.MatchesWon) / float64(p.MatchesPlayed)
}
