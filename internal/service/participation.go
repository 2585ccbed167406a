package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gamermajilis/tournaments-api/internal/domain"
	"github.com/gamermajilis/tournaments-api/internal/repository"
)

var (
	ErrParticipationNotFound     = repository.ErrParticipationNotFound
	ErrAlreadyRegistered         = repository.ErrAlreadyRegistered
	ErrRegistrationClosed        = repository.ErrRegistrationClosed
	ErrTournamentFull            = repository.ErrTournamentFull
	ErrAlreadyCheckedIn          = repository.ErrAlreadyCheckedIn
	ErrAlreadyDisqualified       = repository.ErrAlreadyDisqualified
	ErrParticipationNotConfirmed = repository.ErrParticipationNotConfirmed
	ErrParticipationFinal        = repository.ErrParticipationFinal
)

type ParticipationRepository interface {
	Register(ctx context.Context, participation domain.Participation) (domain.Participation, error)
	GetByTournamentAndParticipant(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error)
	ListByTournament(ctx context.Context, tournamentID uint) ([]domain.Participation, error)
	ListByParticipant(ctx context.Context, participantID uint) ([]domain.Participation, error)
	CheckIn(ctx context.Context, tournamentID, participantID uint, now time.Time) error
	Disqualify(ctx context.Context, tournamentID, participantID uint, reason string) error
	AddMatchResult(ctx context.Context, tournamentID, participantID uint, won bool) error
	Withdraw(ctx context.Context, tournamentID, participantID uint) error
}

// ParticipationService owns registration under the capacity limit, check-in,
// disqualification, withdrawal and match-result accumulation. The capacity
// guard itself lives in the store: registration commits only if the
// conditional counter bump affects a row, so concurrent registrations for the
// last slot are decided there, not here.
type ParticipationService struct {
	repo           ParticipationRepository
	tournamentRepo TournamentRepository
	now            func() time.Time
}

func NewParticipationService(repo ParticipationRepository, tournamentRepo TournamentRepository) *ParticipationService {
	return &ParticipationService{
		repo:           repo,
		tournamentRepo: tournamentRepo,
		now:            time.Now,
	}
}

func (s *ParticipationService) Register(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			return domain.Participation{}, ErrTournamentNotFound
		}
		return domain.Participation{}, fmt.Errorf("s.tournamentRepo.GetByID -> %w", err)
	}

	// Pre-checks give precise rejections on the slow path; the store re-checks
	// capacity and registration status atomically on commit.
	now := s.now()
	if tournament.IsFull() {
		return domain.Participation{}, ErrTournamentFull
	}
	if !tournament.CanParticipate(now) {
		return domain.Participation{}, ErrRegistrationClosed
	}

	participation := domain.Participation{
		TournamentID:     tournamentID,
		ParticipantID:    participantID,
		Status:           domain.ParticipationRegistered,
		RegistrationDate: now,
	}

	created, err := s.repo.Register(ctx, participation)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyRegistered),
			errors.Is(err, ErrTournamentFull),
			errors.Is(err, ErrRegistrationClosed),
			errors.Is(err, ErrTournamentNotFound):
			return domain.Participation{}, err
		}
		return domain.Participation{}, fmt.Errorf("s.repo.Register -> %w", err)
	}

	zap.L().Info("participant registered",
		zap.Uint("tournamentID", tournamentID),
		zap.Uint("participantID", participantID))

	return created, nil
}

func (s *ParticipationService) CheckIn(ctx context.Context, tournamentID, participantID uint) error {
	if err := s.repo.CheckIn(ctx, tournamentID, participantID, s.now()); err != nil {
		switch {
		case errors.Is(err, ErrParticipationNotFound),
			errors.Is(err, ErrAlreadyCheckedIn),
			errors.Is(err, ErrParticipationFinal):
			return err
		}
		return fmt.Errorf("s.repo.CheckIn -> %w", err)
	}

	return nil
}

func (s *ParticipationService) Disqualify(ctx context.Context, tournamentID, participantID uint, reason string) error {
	if reason == "" {
		return domain.ValidationError{Field: "reason", Reason: "is required"}
	}

	if err := s.repo.Disqualify(ctx, tournamentID, participantID, reason); err != nil {
		switch {
		case errors.Is(err, ErrParticipationNotFound),
			errors.Is(err, ErrAlreadyDisqualified):
			return err
		}
		return fmt.Errorf("s.repo.Disqualify -> %w", err)
	}

	zap.L().Info("participant disqualified",
		zap.Uint("tournamentID", tournamentID),
		zap.Uint("participantID", participantID),
		zap.String("reason", reason))

	return nil
}

func (s *ParticipationService) SubmitMatchResult(ctx context.Context, tournamentID, participantID uint, won bool) error {
	if err := s.repo.AddMatchResult(ctx, tournamentID, participantID, won); err != nil {
		switch {
		case errors.Is(err, ErrParticipationNotFound),
			errors.Is(err, ErrParticipationNotConfirmed):
			return err
		}
		return fmt.Errorf("s.repo.AddMatchResult -> %w", err)
	}

	return nil
}

func (s *ParticipationService) Withdraw(ctx context.Context, tournamentID, participantID uint) error {
	if err := s.repo.Withdraw(ctx, tournamentID, participantID); err != nil {
		switch {
		case errors.Is(err, ErrParticipationNotFound),
			errors.Is(err, ErrParticipationFinal):
			return err
		}
		return fmt.Errorf("s.repo.Withdraw -> %w", err)
	}

	return nil
}

func (s *ParticipationService) ListByTournament(ctx context.Context, tournamentID uint) ([]domain.Participation, error) {
	participations, err := s.repo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByTournament -> %w", err)
	}

	return participations, nil
}

func (s *ParticipationService) ListByParticipant(ctx context.Context, participantID uint) ([]domain.Participation, error) {
	participations, err := s.repo.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByParticipant -> %w", err)
	}

	return participations, nil
}

func (s *ParticipationService) Get(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error) {
	participation, err := s.repo.GetByTournamentAndParticipant(ctx, tournamentID, participantID)
	if err != nil {
		if errors.Is(err, ErrParticipationNotFound) {
			return domain.Participation{}, ErrParticipationNotFound
		}
		return domain.Participation{}, fmt.Errorf("s.repo.GetByTournamentAndParticipant -> %w", err)
	}

	return participation, nil
}
