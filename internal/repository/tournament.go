package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gamermajilis/tournaments-api/internal/domain"
	"github.com/gamermajilis/tournaments-api/internal/repository/dao"
)

var (
	ErrTournamentNotFound  = dao.ErrTournamentNotFound
	ErrTournamentNameTaken = dao.ErrTournamentNameTaken
)

// TournamentFilter narrows List results. Nil/zero fields are ignored.
type TournamentFilter struct {
	Status       *domain.TournamentStatus
	OrganizerID  *uint
	NameContains string
	Limit        int
	Offset       int
}

type TournamentDAO interface {
	Insert(ctx context.Context, tournament dao.Tournament) (dao.Tournament, error)
	FindByID(ctx context.Context, id uint) (dao.Tournament, error)
	Update(ctx context.Context, tournament dao.Tournament) (dao.Tournament, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	SoftDelete(ctx context.Context, id uint, now time.Time) error
	AddModerator(ctx context.Context, tournamentID, moderatorID uint) error
	IncrementViewCount(ctx context.Context, id uint) error
	IncrementSpectatorCount(ctx context.Context, id uint) error
	List(ctx context.Context, filter dao.ListFilter) ([]dao.Tournament, error)
}

type TournamentRepository struct {
	dao TournamentDAO
}

func NewTournamentRepository(dao TournamentDAO) *TournamentRepository {
	return &TournamentRepository{
		dao: dao,
	}
}

func (r *TournamentRepository) domainToDao(t domain.Tournament) dao.Tournament {
	return dao.Tournament{
		ID:                   t.ID,
		Name:                 t.Name,
		Description:          t.Description,
		GameTitle:            t.GameTitle,
		GameCategory:         t.GameCategory,
		MaxParticipants:      t.MaxParticipants,
		CurrentParticipants:  t.CurrentParticipants,
		PrizePool:            t.PrizePool,
		PrizeCurrency:        t.PrizeCurrency,
		EntryFee:             t.EntryFee,
		StartDate:            t.StartDate,
		RegistrationDeadline: t.RegistrationDeadline,
		EndDate:              t.EndDate,
		Rules:                t.Rules,
		Regulations:          t.Regulations,
		Status:               string(t.Status),
		Type:                 string(t.Type),
		IsPublic:             t.IsPublic,
		RequiresApproval:     t.RequiresApproval,
		AgeRestriction:       t.AgeRestriction,
		RegionRestriction:    t.RegionRestriction,
		BracketData:          t.BracketData,
		CurrentRound:         t.CurrentRound,
		TotalRounds:          t.TotalRounds,
		WinnerID:             t.WinnerID,
		RunnerUpID:           t.RunnerUpID,
		ThirdPlaceID:         t.ThirdPlaceID,
		OrganizerID:          t.OrganizerID,
		ViewCount:            t.ViewCount,
		SpectatorCount:       t.SpectatorCount,
		Deleted:              t.Deleted,
		DeletedAt:            t.DeletedAt,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

func (r *TournamentRepository) daoToDomain(t dao.Tournament) domain.Tournament {
	moderatorIDs := make([]uint, 0, len(t.Moderators))
	for _, moderator := range t.Moderators {
		moderatorIDs = append(moderatorIDs, moderator.ModeratorID)
	}

	return domain.Tournament{
		ID:                   t.ID,
		Name:                 t.Name,
		Description:          t.Description,
		GameTitle:            t.GameTitle,
		GameCategory:         t.GameCategory,
		MaxParticipants:      t.MaxParticipants,
		CurrentParticipants:  t.CurrentParticipants,
		PrizePool:            t.PrizePool,
		PrizeCurrency:        t.PrizeCurrency,
		EntryFee:             t.EntryFee,
		StartDate:            t.StartDate,
		RegistrationDeadline: t.RegistrationDeadline,
		EndDate:              t.EndDate,
		Rules:                t.Rules,
		Regulations:          t.Regulations,
		Status:               domain.TournamentStatus(t.Status),
		Type:                 domain.TournamentType(t.Type),
		IsPublic:             t.IsPublic,
		RequiresApproval:     t.RequiresApproval,
		AgeRestriction:       t.AgeRestriction,
		RegionRestriction:    t.RegionRestriction,
		BracketData:          t.BracketData,
		CurrentRound:         t.CurrentRound,
		TotalRounds:          t.TotalRounds,
		WinnerID:             t.WinnerID,
		RunnerUpID:           t.RunnerUpID,
		ThirdPlaceID:         t.ThirdPlaceID,
		OrganizerID:          t.OrganizerID,
		ModeratorIDs:         moderatorIDs,
		ViewCount:            t.ViewCount,
		SpectatorCount:       t.SpectatorCount,
		Deleted:              t.Deleted,
		DeletedAt:            t.DeletedAt,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

func (r *TournamentRepository) Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(tournament))
	if err != nil {
		if err == dao.ErrTournamentNameTaken {
			return domain.Tournament{}, ErrTournamentNameTaken
		}
		return domain.Tournament{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, id uint) (domain.Tournament, error) {
	tournament, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if err == dao.ErrTournamentNotFound {
			return domain.Tournament{}, ErrTournamentNotFound
		}
		return domain.Tournament{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(tournament), nil
}

func (r *TournamentRepository) Update(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(tournament))
	if err != nil {
		switch err {
		case dao.ErrTournamentNotFound, dao.ErrTournamentNameTaken:
			return domain.Tournament{}, err
		}
		return domain.Tournament{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *TournamentRepository) UpdateStatus(ctx context.Context, id uint, status domain.TournamentStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		if err == dao.ErrTournamentNotFound {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *TournamentRepository) SoftDelete(ctx context.Context, id uint, now time.Time) error {
	if err := r.dao.SoftDelete(ctx, id, now); err != nil {
		if err == dao.ErrTournamentNotFound {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("r.dao.SoftDelete -> %w", err)
	}

	return nil
}

func (r *TournamentRepository) AddModerator(ctx context.Context, tournamentID, moderatorID uint) error {
	if err := r.dao.AddModerator(ctx, tournamentID, moderatorID); err != nil {
		if err == dao.ErrTournamentNotFound {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("r.dao.AddModerator -> %w", err)
	}

	return nil
}

func (r *TournamentRepository) IncrementViewCount(ctx context.Context, id uint) error {
	if err := r.dao.IncrementViewCount(ctx, id); err != nil {
		if err == dao.ErrTournamentNotFound {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("r.dao.IncrementViewCount -> %w", err)
	}

	return nil
}

func (r *TournamentRepository) IncrementSpectatorCount(ctx context.Context, id uint) error {
	if err := r.dao.IncrementSpectatorCount(ctx, id); err != nil {
		if err == dao.ErrTournamentNotFound {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("r.dao.IncrementSpectatorCount -> %w", err)
	}

	return nil
}

func (r *TournamentRepository) List(ctx context.Context, filter TournamentFilter) ([]domain.Tournament, error) {
	daoFilter := dao.ListFilter{
		NameContains: filter.NameContains,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}
	if filter.Status != nil {
		daoFilter.Status = string(*filter.Status)
	}
	if filter.OrganizerID != nil {
		daoFilter.OrganizerID = *filter.OrganizerID
	}

	tournaments, err := r.dao.List(ctx, daoFilter)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	results := make([]domain.Tournament, len(tournaments))
	for i, tournament := range tournaments {
		results[i] = r.daoToDomain(tournament)
	}

	return results, nil
}
