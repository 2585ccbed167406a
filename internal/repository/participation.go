package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gamermajilis/tournaments-api/internal/domain"
	"github.com/gamermajilis/tournaments-api/internal/repository/dao"
)

var (
	ErrParticipationNotFound     = dao.ErrParticipationNotFound
	ErrAlreadyRegistered         = dao.ErrAlreadyRegistered
	ErrRegistrationClosed        = dao.ErrRegistrationClosed
	ErrTournamentFull            = dao.ErrTournamentFull
	ErrAlreadyCheckedIn          = dao.ErrAlreadyCheckedIn
	ErrAlreadyDisqualified       = dao.ErrAlreadyDisqualified
	ErrParticipationNotConfirmed = dao.ErrParticipationNotConfirmed
	ErrParticipationFinal        = dao.ErrParticipationFinal
)

// participationSentinels are passed through unwrapped so services can match
// them directly.
var participationSentinels = []error{
	dao.ErrTournamentNotFound,
	dao.ErrParticipationNotFound,
	dao.ErrAlreadyRegistered,
	dao.ErrRegistrationClosed,
	dao.ErrTournamentFull,
	dao.ErrAlreadyCheckedIn,
	dao.ErrAlreadyDisqualified,
	dao.ErrParticipationNotConfirmed,
	dao.ErrParticipationFinal,
}

func passParticipationSentinel(err error) (error, bool) {
	for _, sentinel := range participationSentinels {
		if errors.Is(err, sentinel) {
			return sentinel, true
		}
	}
	return nil, false
}

type ParticipationDAO interface {
	Register(ctx context.Context, participation dao.Participation) (dao.Participation, error)
	FindByTournamentAndParticipant(ctx context.Context, tournamentID, participantID uint) (dao.Participation, error)
	FindByTournament(ctx context.Context, tournamentID uint) ([]dao.Participation, error)
	FindByParticipant(ctx context.Context, participantID uint) ([]dao.Participation, error)
	CheckIn(ctx context.Context, tournamentID, participantID uint, now time.Time) error
	Disqualify(ctx context.Context, tournamentID, participantID uint, reason string) error
	AddMatchResult(ctx context.Context, tournamentID, participantID uint, won bool) error
	Withdraw(ctx context.Context, tournamentID, participantID uint) error
}

type ParticipationRepository struct {
	dao ParticipationDAO
}

func NewParticipationRepository(dao ParticipationDAO) *ParticipationRepository {
	return &ParticipationRepository{
		dao: dao,
	}
}

func (r *ParticipationRepository) domainToDao(p domain.Participation) dao.Participation {
	return dao.Participation{
		ID:                     p.ID,
		TournamentID:           p.TournamentID,
		ParticipantID:          p.ParticipantID,
		Status:                 string(p.Status),
		RegistrationDate:       p.RegistrationDate,
		SeedNumber:             p.SeedNumber,
		BracketPosition:        p.BracketPosition,
		MatchesPlayed:          p.MatchesPlayed,
		MatchesWon:             p.MatchesWon,
		MatchesLost:            p.MatchesLost,
		Points:                 p.Points,
		FinalPlacement:         p.FinalPlacement,
		TeamName:               p.TeamName,
		ParticipantNotes:       p.ParticipantNotes,
		CheckedIn:              p.CheckedIn,
		CheckInTime:            p.CheckInTime,
		Disqualified:           p.Disqualified,
		DisqualificationReason: p.DisqualificationReason,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func (r *ParticipationRepository) daoToDomain(p dao.Participation) domain.Participation {
	return domain.Participation{
		ID:                     p.ID,
		TournamentID:           p.TournamentID,
		ParticipantID:          p.ParticipantID,
		Status:                 domain.ParticipationStatus(p.Status),
		RegistrationDate:       p.RegistrationDate,
		SeedNumber:             p.SeedNumber,
		BracketPosition:        p.BracketPosition,
		MatchesPlayed:          p.MatchesPlayed,
		MatchesWon:             p.MatchesWon,
		MatchesLost:            p.MatchesLost,
		Points:                 p.Points,
		FinalPlacement:         p.FinalPlacement,
		TeamName:               p.TeamName,
		ParticipantNotes:       p.ParticipantNotes,
		CheckedIn:              p.CheckedIn,
		CheckInTime:            p.CheckInTime,
		Disqualified:           p.Disqualified,
		DisqualificationReason: p.DisqualificationReason,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func (r *ParticipationRepository) Register(ctx context.Context, participation domain.Participation) (domain.Participation, error) {
	created, err := r.dao.Register(ctx, r.domainToDao(participation))
	if err != nil {
		if sentinel, ok := passParticipationSentinel(err); ok {
			return domain.Participation{}, sentinel
		}
		return domain.Participation{}, fmt.Errorf("r.dao.Register -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipationRepository) GetByTournamentAndParticipant(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error) {
	participation, err := r.dao.FindByTournamentAndParticipant(ctx, tournamentID, participantID)
	if err != nil {
		if sentinel, ok := passParticipationSentinel(err); ok {
			return domain.Participation{}, sentinel
		}
		return domain.Participation{}, fmt.Errorf("r.dao.FindByTournamentAndParticipant -> %w", err)
	}

	return r.daoToDomain(participation), nil
}

func (r *ParticipationRepository) ListByTournament(ctx context.Context, tournamentID uint) ([]domain.Participation, error) {
	participations, err := r.dao.FindByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTournament -> %w", err)
	}

	results := make([]domain.Participation, len(participations))
	for i, participation := range participations {
		results[i] = r.daoToDomain(participation)
	}

	return results, nil
}

func (r *ParticipationRepository) ListByParticipant(ctx context.Context, participantID uint) ([]domain.Participation, error) {
	participations, err := r.dao.FindByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParticipant -> %w", err)
	}

	results := make([]domain.Participation, len(participations))
	for i, participation := range participations {
		results[i] = r.daoToDomain(participation)
	}

	return results, nil
}

func (r *ParticipationRepository) CheckIn(ctx context.Context, tournamentID, participantID uint, now time.Time) error {
	if err := r.dao.CheckIn(ctx, tournamentID, participantID, now); err != nil {
		if sentinel, ok := passParticipationSentinel(err); ok {
			return sentinel
		}
		return fmt.Errorf("r.dao.CheckIn -> %w", err)
	}

	return nil
}

func (r *ParticipationRepository) Disqualify(ctx context.Context, tournamentID, participantID uint, reason string) error {
	if err := r.dao.Disqualify(ctx, tournamentID, participantID, reason); err != nil {
		if sentinel, ok := passParticipationSentinel(err); ok {
			return sentinel
		}
		return fmt.Errorf("r.dao.Disqualify -> %w", err)
	}

	return nil
}

func (r *ParticipationRepository) AddMatchResult(ctx context.Context, tournamentID, participantID uint, won bool) error {
	if err := r.dao.AddMatchResult(ctx, tournamentID, participantID, won); err != nil {
		if sentinel, ok := passParticipationSentinel(err); ok {
			return sentinel
		}
		return fmt.Errorf("r.dao.AddMatchResult -> %w", err)
	}

	return nil
}

func (r *ParticipationRepository) Withdraw(ctx context.Context, tournamentID, participantID uint) error {
	if err := r.dao.Withdraw(ctx, tournamentID, participantID); err != nil {
		if sentinel, ok := passParticipationSentinel(err); ok {
			return sentinel
		}
		return fmt.Errorf("r.dao.Withdraw -> %w", err)
	}

	return nil
}
