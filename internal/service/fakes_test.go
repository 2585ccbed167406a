package service

import (
	"context"
	"sync"
	"time"

	"github.com/gamermajilis/tournaments-api/internal/domain"
	"github.com/gamermajilis/tournaments-api/internal/repository"
)

// fakeStore is a mutex-guarded in-memory stand-in for the postgres-backed
// repositories. It mirrors the store's concurrency contract: the counter bump
// during registration is a conditional compare-and-increment executed under
// the same lock as the duplicate check.
type fakeStore struct {
	mu             sync.Mutex
	nextID         uint
	tournaments    map[uint]domain.Tournament
	participations map[uint]map[uint]*domain.Participation // tournamentID -> participantID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:         1,
		tournaments:    make(map[uint]domain.Tournament),
		participations: make(map[uint]map[uint]*domain.Participation),
	}
}

func (f *fakeStore) putTournament(t domain.Tournament) domain.Tournament {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == 0 {
		t.ID = f.nextID
		f.nextID++
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	f.tournaments[t.ID] = t
	return t
}

// TournamentRepository

func (f *fakeStore) Create(_ context.Context, t domain.Tournament) (domain.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tournaments {
		if existing.Name == t.Name && !existing.Deleted {
			return domain.Tournament{}, repository.ErrTournamentNameTaken
		}
	}
	t.ID = f.nextID
	f.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tournaments[t.ID] = t
	return t, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint) (domain.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[id]
	if !ok || t.Deleted {
		return domain.Tournament{}, repository.ErrTournamentNotFound
	}
	return t, nil
}

func (f *fakeStore) Update(_ context.Context, t domain.Tournament) (domain.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.tournaments[t.ID]
	if !ok || existing.Deleted {
		return domain.Tournament{}, repository.ErrTournamentNotFound
	}
	t.UpdatedAt = time.Now()
	f.tournaments[t.ID] = t
	return t, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uint, status domain.TournamentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[id]
	if !ok || t.Deleted {
		return repository.ErrTournamentNotFound
	}
	t.Status = status
	f.tournaments[id] = t
	return nil
}

func (f *fakeStore) SoftDelete(_ context.Context, id uint, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[id]
	if !ok {
		return repository.ErrTournamentNotFound
	}
	t.Deleted = true
	t.DeletedAt = &now
	f.tournaments[id] = t
	return nil
}

func (f *fakeStore) AddModerator(_ context.Context, tournamentID, moderatorID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[tournamentID]
	if !ok || t.Deleted {
		return repository.ErrTournamentNotFound
	}
	for _, id := range t.ModeratorIDs {
		if id == moderatorID {
			return nil
		}
	}
	t.ModeratorIDs = append(t.ModeratorIDs, moderatorID)
	f.tournaments[tournamentID] = t
	return nil
}

func (f *fakeStore) IncrementViewCount(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[id]
	if !ok || t.Deleted {
		return repository.ErrTournamentNotFound
	}
	t.ViewCount++
	f.tournaments[id] = t
	return nil
}

func (f *fakeStore) IncrementSpectatorCount(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[id]
	if !ok || t.Deleted {
		return repository.ErrTournamentNotFound
	}
	t.SpectatorCount++
	f.tournaments[id] = t
	return nil
}

func (f *fakeStore) List(_ context.Context, filter repository.TournamentFilter) ([]domain.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []domain.Tournament
	for _, t := range f.tournaments {
		if t.Deleted {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.OrganizerID != nil && t.OrganizerID != *filter.OrganizerID {
			continue
		}
		results = append(results, t)
	}
	return results, nil
}

// ParticipationRepository

func (f *fakeStore) Register(_ context.Context, p domain.Participation) (domain.Participation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tournaments[p.TournamentID]
	if !ok || t.Deleted {
		return domain.Participation{}, repository.ErrTournamentNotFound
	}

	byParticipant := f.participations[p.TournamentID]
	if byParticipant == nil {
		byParticipant = make(map[uint]*domain.Participation)
		f.participations[p.TournamentID] = byParticipant
	}
	if _, exists := byParticipant[p.ParticipantID]; exists {
		return domain.Participation{}, repository.ErrAlreadyRegistered
	}

	// Conditional compare-and-increment under the lock, like the store's
	// conditional UPDATE.
	if t.Status != domain.TournamentRegistrationOpen {
		return domain.Participation{}, repository.ErrRegistrationClosed
	}
	if t.CurrentParticipants >= t.MaxParticipants {
		return domain.Participation{}, repository.ErrTournamentFull
	}
	t.CurrentParticipants++
	f.tournaments[p.TournamentID] = t

	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	byParticipant[p.ParticipantID] = &p

	return p, nil
}

func (f *fakeStore) GetByTournamentAndParticipant(_ context.Context, tournamentID, participantID uint) (domain.Participation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.participations[tournamentID][participantID]
	if !ok {
		return domain.Participation{}, repository.ErrParticipationNotFound
	}
	return *p, nil
}

func (f *fakeStore) ListByTournament(_ context.Context, tournamentID uint) ([]domain.Participation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []domain.Participation
	for _, p := range f.participations[tournamentID] {
		results = append(results, *p)
	}
	return results, nil
}

func (f *fakeStore) ListByParticipant(_ context.Context, participantID uint) ([]domain.Participation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []domain.Participation
	for _, byParticipant := range f.participations {
		if p, ok := byParticipant[participantID]; ok {
			results = append(results, *p)
		}
	}
	return results, nil
}

func (f *fakeStore) CheckIn(_ context.Context, tournamentID, participantID uint, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.participations[tournamentID][participantID]
	if !ok {
		return repository.ErrParticipationNotFound
	}
	if p.Status.IsTerminal() {
		return repository.ErrParticipationFinal
	}
	if p.CheckedIn {
		return repository.ErrAlreadyCheckedIn
	}
	p.CheckedIn = true
	p.CheckInTime = &now
	if p.Status == domain.ParticipationRegistered {
		p.Status = domain.ParticipationConfirmed
	}
	return nil
}

func (f *fakeStore) Disqualify(_ context.Context, tournamentID, participantID uint, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.participations[tournamentID][participantID]
	if !ok {
		return repository.ErrParticipationNotFound
	}
	if p.Disqualified {
		return repository.ErrAlreadyDisqualified
	}
	p.Disqualified = true
	p.DisqualificationReason = reason
	p.Status = domain.ParticipationDisqualified
	return nil
}

func (f *fakeStore) AddMatchResult(_ context.Context, tournamentID, participantID uint, won bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.participations[tournamentID][participantID]
	if !ok {
		return repository.ErrParticipationNotFound
	}
	if p.Status != domain.ParticipationConfirmed {
		return repository.ErrParticipationNotConfirmed
	}
	p.MatchesPlayed++
	if won {
		p.MatchesWon++
	} else {
		p.MatchesLost++
	}
	return nil
}

func (f *fakeStore) Withdraw(_ context.Context, tournamentID, participantID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.participations[tournamentID][participantID]
	if !ok {
		return repository.ErrParticipationNotFound
	}
	if p.Status.IsTerminal() {
		return repository.ErrParticipationFinal
	}
	p.Status = domain.ParticipationWithdrawn
	t := f.tournaments[tournamentID]
	if t.CurrentParticipants > 0 {
		t.CurrentParticipants--
		f.tournaments[tournamentID] = t
	}
	return nil
}
