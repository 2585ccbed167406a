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
	ErrTournamentNotFound  = repository.ErrTournamentNotFound
	ErrTournamentNameTaken = repository.ErrTournamentNameTaken

	// ErrTournamentLocked rejects modifications once registration has closed.
	ErrTournamentLocked = errors.New("tournament can no longer be modified")

	ErrInvalidStatusTransition = errors.New("illegal tournament status transition")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	GetByID(ctx context.Context, id uint) (domain.Tournament, error)
	Update(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TournamentStatus) error
	SoftDelete(ctx context.Context, id uint, now time.Time) error
	AddModerator(ctx context.Context, tournamentID, moderatorID uint) error
	IncrementViewCount(ctx context.Context, id uint) error
	IncrementSpectatorCount(ctx context.Context, id uint) error
	List(ctx context.Context, filter repository.TournamentFilter) ([]domain.Tournament, error)
}

// TournamentService owns the tournament lifecycle: creation, descriptive
// updates while modifiable, status transitions, soft deletion, the moderator
// set and the view/spectator counters.
type TournamentService struct {
	repo TournamentRepository
	now  func() time.Time
}

func NewTournamentService(repo TournamentRepository) *TournamentService {
	return &TournamentService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *TournamentService) Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	if err := tournament.Validate(); err != nil {
		return domain.Tournament{}, err
	}

	tournament.Status = domain.TournamentDraft
	tournament.CurrentParticipants = 0
	if tournament.Type == "" {
		tournament.Type = domain.SingleElimination
	}
	if tournament.PrizeCurrency == "" {
		tournament.PrizeCurrency = "USD"
	}

	created, err := s.repo.Create(ctx, tournament)
	if err != nil {
		if errors.Is(err, ErrTournamentNameTaken) {
			return domain.Tournament{}, ErrTournamentNameTaken
		}
		return domain.Tournament{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("tournament created",
		zap.Uint("tournamentID", created.ID),
		zap.Uint("organizerID", created.OrganizerID))

	return created, nil
}

func (s *TournamentService) Get(ctx context.Context, id uint) (domain.Tournament, error) {
	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			return domain.Tournament{}, ErrTournamentNotFound
		}
		return domain.Tournament{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return tournament, nil
}

func (s *TournamentService) Update(ctx context.Context, id uint, upd domain.TournamentUpdate) (domain.Tournament, error) {
	tournament, err := s.Get(ctx, id)
	if err != nil {
		return domain.Tournament{}, err
	}

	if !tournament.CanModify() {
		return domain.Tournament{}, ErrTournamentLocked
	}
	if err := tournament.ValidateUpdate(upd); err != nil {
		return domain.Tournament{}, err
	}

	tournament.ApplyUpdate(upd)

	updated, err := s.repo.Update(ctx, tournament)
	if err != nil {
		switch {
		case errors.Is(err, ErrTournamentNotFound), errors.Is(err, ErrTournamentNameTaken):
			return domain.Tournament{}, err
		}
		return domain.Tournament{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *TournamentService) UpdateStatus(ctx context.Context, id uint, next domain.TournamentStatus) error {
	if !next.Valid() {
		return domain.ValidationError{Field: "status", Reason: "unknown status"}
	}

	tournament, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !tournament.Status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	zap.L().Info("tournament status changed",
		zap.Uint("tournamentID", id),
		zap.String("from", string(tournament.Status)),
		zap.String("to", string(next)))

	return nil
}

// Delete soft-deletes. Re-deleting an already-deleted tournament still
// succeeds (the tombstone is re-stamped); subsequent reads treat it as gone.
func (s *TournamentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.SoftDelete(ctx, id, s.now()); err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("s.repo.SoftDelete -> %w", err)
	}

	return nil
}

func (s *TournamentService) AddModerator(ctx context.Context, tournamentID, moderatorID uint) error {
	if err := s.repo.AddModerator(ctx, tournamentID, moderatorID); err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("s.repo.AddModerator -> %w", err)
	}

	return nil
}

func (s *TournamentService) IncrementViewCount(ctx context.Context, id uint) error {
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("s.repo.IncrementViewCount -> %w", err)
	}

	return nil
}

func (s *TournamentService) IncrementSpectatorCount(ctx context.Context, id uint) error {
	if err := s.repo.IncrementSpectatorCount(ctx, id); err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("s.repo.IncrementSpectatorCount -> %w", err)
	}

	return nil
}

func (s *TournamentService) List(ctx context.Context, filter repository.TournamentFilter) ([]domain.Tournament, error) {
	tournaments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return tournaments, nil
}
