package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrTournamentNameTaken = errors.New("tournament name already taken")
)

type Tournament struct {
	ID                   uint   `gorm:"primaryKey"`
	Name                 string `gorm:"unique;not null"`
	Description          string `gorm:"type:text"`
	GameTitle            string `gorm:"not null"`
	GameCategory         string
	MaxParticipants      int `gorm:"not null"`
	CurrentParticipants  int `gorm:"not null;default:0"`
	PrizePool            float64
	PrizeCurrency        string `gorm:"size:3;default:'USD'"`
	EntryFee             float64
	StartDate            time.Time `gorm:"not null"`
	RegistrationDeadline *time.Time
	EndDate              *time.Time
	Rules                string `gorm:"type:text"`
	Regulations          string `gorm:"type:text"`
	Status               string `gorm:"not null;default:'DRAFT';index"`
	Type                 string `gorm:"not null;default:'SINGLE_ELIMINATION'"`
	IsPublic             bool   `gorm:"not null;default:true"`
	RequiresApproval     bool   `gorm:"not null;default:false"`
	AgeRestriction       *int
	RegionRestriction    string
	BracketData          string `gorm:"type:text"`
	CurrentRound         int    `gorm:"not null;default:0"`
	TotalRounds          *int
	WinnerID             *uint
	RunnerUpID           *uint
	ThirdPlaceID         *uint
	OrganizerID          uint  `gorm:"not null;index"`
	ViewCount            int64 `gorm:"not null;default:0"`
	SpectatorCount       int64 `gorm:"not null;default:0"`
	Deleted              bool  `gorm:"not null;default:false;index"`
	DeletedAt            *time.Time
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`

	Moderators []TournamentModerator `gorm:"foreignKey:TournamentID"`
}

// TournamentModerator is a row in the moderator id set of a tournament.
type TournamentModerator struct {
	ID           uint `gorm:"primaryKey"`
	TournamentID uint `gorm:"not null;uniqueIndex:idx_tournament_moderator"`
	ModeratorID  uint `gorm:"not null;uniqueIndex:idx_tournament_moderator"`
}

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	Status       string
	OrganizerID  uint
	NameContains string
	Limit        int
	Offset       int
}

type TournamentDAO struct {
	db *gorm.DB
}

func NewTournamentDAO(db *gorm.DB) *TournamentDAO {
	return &TournamentDAO{
		db: db,
	}
}

func (d *TournamentDAO) Insert(ctx context.Context, tournament Tournament) (Tournament, error) {
	result := d.db.WithContext(ctx).Create(&tournament)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_tournaments_name"`) {
			return Tournament{}, ErrTournamentNameTaken
		}

		return Tournament{}, result.Error
	}

	return tournament, nil
}

// FindByID treats tombstoned rows as absent.
func (d *TournamentDAO) FindByID(ctx context.Context, id uint) (Tournament, error) {
	var tournament Tournament

	result := d.db.WithContext(ctx).
		Preload("Moderators").
		Where("deleted = ?", false).
		First(&tournament, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Tournament{}, ErrTournamentNotFound
		}

		return Tournament{}, result.Error
	}

	return tournament, nil
}

func (d *TournamentDAO) Update(ctx context.Context, tournament Tournament) (Tournament, error) {
	result := d.db.WithContext(ctx).
		Model(&Tournament{}).
		Where("id = ? AND deleted = ?", tournament.ID, false).
		Updates(map[string]interface{}{
			"name":             tournament.Name,
			"description":      tournament.Description,
			"game_title":       tournament.GameTitle,
			"game_category":    tournament.GameCategory,
			"max_participants": tournament.MaxParticipants,
			"start_date":       tournament.StartDate,
			"rules":            tournament.Rules,
			"regulations":      tournament.Regulations,
		})
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Tournament{}, ErrTournamentNameTaken
		}

		return Tournament{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Tournament{}, ErrTournamentNotFound
	}

	return d.FindByID(ctx, tournament.ID)
}

func (d *TournamentDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Tournament{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTournamentNotFound
	}

	return nil
}

// SoftDelete stamps the tombstone. Re-stamping an already-deleted row
// succeeds; only a missing id is an error.
func (d *TournamentDAO) SoftDelete(ctx context.Context, id uint, now time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&Tournament{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted":    true,
			"deleted_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTournamentNotFound
	}

	return nil
}

// AddModerator is an idempotent set-insert.
func (d *TournamentDAO) AddModerator(ctx context.Context, tournamentID, moderatorID uint) error {
	if _, err := d.FindByID(ctx, tournamentID); err != nil {
		return err
	}

	moderator := TournamentModerator{
		TournamentID: tournamentID,
		ModeratorID:  moderatorID,
	}
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&moderator)

	return result.Error
}

func (d *TournamentDAO) IncrementViewCount(ctx context.Context, id uint) error {
	return d.incrementCounter(ctx, id, "view_count")
}

func (d *TournamentDAO) IncrementSpectatorCount(ctx context.Context, id uint) error {
	return d.incrementCounter(ctx, id, "spectator_count")
}

func (d *TournamentDAO) incrementCounter(ctx context.Context, id uint, column string) error {
	result := d.db.WithContext(ctx).
		Model(&Tournament{}).
		Where("id = ? AND deleted = ?", id, false).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTournamentNotFound
	}

	return nil
}

func (d *TournamentDAO) List(ctx context.Context, filter ListFilter) ([]Tournament, error) {
	query := d.db.WithContext(ctx).
		Where("deleted = ?", false).
		Order("created_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrganizerID != 0 {
		query = query.Where("organizer_id = ?", filter.OrganizerID)
	}
	if filter.NameContains != "" {
		query = query.Where("name ILIKE ?", "%"+filter.NameContains+"%")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var tournaments []Tournament
	result := query.Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}

	return tournaments, nil
}
