package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrParticipationNotFound     = errors.New("participation not found")
	ErrAlreadyRegistered         = errors.New("participant already registered for this tournament")
	ErrRegistrationClosed        = errors.New("registration for this tournament is closed")
	ErrTournamentFull            = errors.New("tournament is full")
	ErrAlreadyCheckedIn          = errors.New("participant is already checked in")
	ErrAlreadyDisqualified       = errors.New("participant is already disqualified")
	ErrParticipationNotConfirmed = errors.New("participant must be confirmed to submit results")
	ErrParticipationFinal        = errors.New("participation is in a terminal state")
)

type Participation struct {
	ID                     uint      `gorm:"primaryKey"`
	TournamentID           uint      `gorm:"not null;uniqueIndex:idx_tournament_participant"`
	ParticipantID          uint      `gorm:"not null;uniqueIndex:idx_tournament_participant"`
	Status                 string    `gorm:"not null;default:'REGISTERED'"`
	RegistrationDate       time.Time `gorm:"not null"`
	SeedNumber             *int
	BracketPosition        *int
	MatchesPlayed          int `gorm:"not null;default:0"`
	MatchesWon             int `gorm:"not null;default:0"`
	MatchesLost            int `gorm:"not null;default:0"`
	Points                 int `gorm:"not null;default:0"`
	FinalPlacement         *int
	TeamName               string
	ParticipantNotes       string `gorm:"type:text"`
	CheckedIn              bool   `gorm:"not null;default:false"`
	CheckInTime            *time.Time
	Disqualified           bool `gorm:"not null;default:false"`
	DisqualificationReason string
	CreatedAt              time.Time `gorm:"not null"`
	UpdatedAt              time.Time `gorm:"not null"`
}

var participationTerminalStatuses = []string{"ELIMINATED", "WITHDRAWN", "DISQUALIFIED", "COMPLETED"}

type ParticipationDAO struct {
	db *gorm.DB
}

func NewParticipationDAO(db *gorm.DB) *ParticipationDAO {
	return &ParticipationDAO{
		db: db,
	}
}

// Register inserts the participation row and bumps the tournament's
// participant counter in one transaction. The composite unique index rejects
// a duplicate (tournament, participant) pair, and the counter bump is a
// conditional update that re-checks capacity and registration status as part
// of the same statement, so two racing registrations for the last slot cannot
// both commit.
func (d *ParticipationDAO) Register(ctx context.Context, participation Participation) (Participation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&participation).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyRegistered
			}

			return err
		}

		result := tx.Model(&Tournament{}).
			Where("id = ? AND deleted = ? AND status = ? AND current_participants < max_participants",
				participation.TournamentID, false, "REGISTRATION_OPEN").
			UpdateColumn("current_participants", gorm.Expr("current_participants + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Rolls back the insert. Re-read to tell "full" from "closed".
			var tournament Tournament
			if err := tx.Where("deleted = ?", false).First(&tournament, participation.TournamentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTournamentNotFound
				}
				return err
			}
			if tournament.Status == "REGISTRATION_OPEN" && tournament.CurrentParticipants >= tournament.MaxParticipants {
				return ErrTournamentFull
			}
			return ErrRegistrationClosed
		}

		return nil
	})
	if err != nil {
		return Participation{}, err
	}

	return participation, nil
}

func (d *ParticipationDAO) FindByTournamentAndParticipant(ctx context.Context, tournamentID, participantID uint) (Participation, error) {
	var participation Participation

	result := d.db.WithContext(ctx).
		Where("tournament_id = ? AND participant_id = ?", tournamentID, participantID).
		First(&participation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participation{}, ErrParticipationNotFound
		}

		return Participation{}, result.Error
	}

	return participation, nil
}

func (d *ParticipationDAO) FindByTournament(ctx context.Context, tournamentID uint) ([]Participation, error) {
	var participations []Participation

	result := d.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("registration_date ASC").
		Find(&participations)
	if result.Error != nil {
		return nil, result.Error
	}

	return participations, nil
}

func (d *ParticipationDAO) FindByParticipant(ctx context.Context, participantID uint) ([]Participation, error) {
	var participations []Participation

	result := d.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("registration_date ASC").
		Find(&participations)
	if result.Error != nil {
		return nil, result.Error
	}

	return participations, nil
}

// CheckIn flips the checked-in flag exactly once. The guard lives in the
// WHERE clause so two concurrent check-ins cannot both observe "first".
// REGISTERED rows advance to CONFIRMED in the same statement.
func (d *ParticipationDAO) CheckIn(ctx context.Context, tournamentID, participantID uint, now time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&Participation{}).
		Where("tournament_id = ? AND participant_id = ? AND checked_in = ? AND status NOT IN ?",
			tournamentID, participantID, false, participationTerminalStatuses).
		Updates(map[string]interface{}{
			"checked_in":    true,
			"check_in_time": now,
			"status":        gorm.Expr("CASE WHEN status = 'REGISTERED' THEN 'CONFIRMED' ELSE status END"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return d.explainRejectedCheckIn(ctx, tournamentID, participantID)
	}

	return nil
}

func (d *ParticipationDAO) explainRejectedCheckIn(ctx context.Context, tournamentID, participantID uint) error {
	participation, err := d.FindByTournamentAndParticipant(ctx, tournamentID, participantID)
	if err != nil {
		return err
	}
	if participation.CheckedIn {
		return ErrAlreadyCheckedIn
	}

	return ErrParticipationFinal
}

// Disqualify is terminal and keeps the first recorded reason.
func (d *ParticipationDAO) Disqualify(ctx context.Context, tournamentID, participantID uint, reason string) error {
	result := d.db.WithContext(ctx).
		Model(&Participation{}).
		Where("tournament_id = ? AND participant_id = ? AND disqualified = ?",
			tournamentID, participantID, false).
		Updates(map[string]interface{}{
			"disqualified":            true,
			"disqualification_reason": reason,
			"status":                  "DISQUALIFIED",
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByTournamentAndParticipant(ctx, tournamentID, participantID); err != nil {
			return err
		}
		return ErrAlreadyDisqualified
	}

	return nil
}

// AddMatchResult accumulates one match into the record. Only CONFIRMED
// participants may record results.
func (d *ParticipationDAO) AddMatchResult(ctx context.Context, tournamentID, participantID uint, won bool) error {
	column := "matches_lost"
	if won {
		column = "matches_won"
	}

	result := d.db.WithContext(ctx).
		Model(&Participation{}).
		Where("tournament_id = ? AND participant_id = ? AND status = ?",
			tournamentID, participantID, "CONFIRMED").
		Updates(map[string]interface{}{
			"matches_played": gorm.Expr("matches_played + 1"),
			column:           gorm.Expr(column + " + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByTournamentAndParticipant(ctx, tournamentID, participantID); err != nil {
			return err
		}
		return ErrParticipationNotConfirmed
	}

	return nil
}

// Withdraw marks a non-terminal participation WITHDRAWN and releases its
// roster slot in the same transaction. The counter decrement is conditional
// so it never drops below zero.
func (d *ParticipationDAO) Withdraw(ctx context.Context, tournamentID, participantID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Participation{}).
			Where("tournament_id = ? AND participant_id = ? AND status NOT IN ?",
				tournamentID, participantID, participationTerminalStatuses).
			Update("status", "WITHDRAWN")
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var participation Participation
			err := tx.Where("tournament_id = ? AND participant_id = ?", tournamentID, participantID).
				First(&participation).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrParticipationNotFound
				}
				return err
			}
			return ErrParticipationFinal
		}

		return tx.Model(&Tournament{}).
			Where("id = ? AND current_participants > 0", tournamentID).
			UpdateColumn("current_participants", gorm.Expr("current_participants - 1")).
			Error
	})
}
