package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gamermajilis/tournaments-api/internal/api/middleware"
	"github.com/gamermajilis/tournaments-api/internal/domain"
	"github.com/gamermajilis/tournaments-api/internal/service"
)

type stubParticipationService struct {
	registerFn   func(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error)
	checkInFn    func(ctx context.Context, tournamentID, participantID uint) error
	disqualifyFn func(ctx context.Context, tournamentID, participantID uint, reason string) error
	withdrawFn   func(ctx context.Context, tournamentID, participantID uint) error
}

func (s *stubParticipationService) Register(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error) {
	return s.registerFn(ctx, tournamentID, participantID)
}

func (s *stubParticipationService) Get(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error) {
	return domain.Participation{}, service.ErrParticipationNotFound
}

func (s *stubParticipationService) CheckIn(ctx context.Context, tournamentID, participantID uint) error {
	return s.checkInFn(ctx, tournamentID, participantID)
}

func (s *stubParticipationService) Disqualify(ctx context.Context, tournamentID, participantID uint, reason string) error {
	return s.disqualifyFn(ctx, tournamentID, participantID, reason)
}

func (s *stubParticipationService) SubmitMatchResult(ctx context.Context, tournamentID, participantID uint, won bool) error {
	return nil
}

func (s *stubParticipationService) Withdraw(ctx context.Context, tournamentID, participantID uint) error {
	return s.withdrawFn(ctx, tournamentID, participantID)
}

func (s *stubParticipationService) ListByTournament(ctx context.Context, tournamentID uint) ([]domain.Participation, error) {
	return nil, nil
}

func (s *stubParticipationService) ListByParticipant(ctx context.Context, participantID uint) ([]domain.Participation, error) {
	return nil, nil
}

func newParticipationTestRouter(svc ParticipationService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewParticipationHandler(svc)

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, uint(42))
	})
	router.POST("/tournaments/:tournamentID/register", handler.HandleRegister)
	router.POST("/tournaments/:tournamentID/withdraw", handler.HandleWithdraw)
	router.POST("/tournaments/:tournamentID/check-in", handler.HandleCheckIn)
	router.POST("/tournaments/:tournamentID/participants/:participantID/disqualify", handler.HandleDisqualifyParticipant)

	return router
}

func TestParticipationHandlerRegister(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "registered",
			err:      nil,
			wantCode: http.StatusCreated,
		},
		{
			name:     "tournament full",
			err:      service.ErrTournamentFull,
			wantCode: http.StatusConflict,
		},
		{
			name:     "already registered",
			err:      service.ErrAlreadyRegistered,
			wantCode: http.StatusConflict,
		},
		{
			name:     "registration closed",
			err:      service.ErrRegistrationClosed,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "missing tournament",
			err:      service.ErrTournamentNotFound,
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubParticipationService{
				registerFn: func(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error) {
					if tt.err != nil {
						return domain.Participation{}, tt.err
					}
					return domain.Participation{ID: 1, TournamentID: tournamentID, ParticipantID: participantID}, nil
				},
			}
			router := newParticipationTestRouter(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/tournaments/1/register", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestParticipationHandlerRegisterUsesAuthenticatedUser(t *testing.T) {
	var gotParticipantID uint
	svc := &stubParticipationService{
		registerFn: func(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error) {
			gotParticipantID = participantID
			return domain.Participation{ID: 1}, nil
		},
	}
	router := newParticipationTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tournaments/1/register", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(42), gotParticipantID)
}

func TestParticipationHandlerCheckIn(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "checked in",
			err:      nil,
			wantCode: http.StatusNoContent,
		},
		{
			name:     "already checked in",
			err:      service.ErrAlreadyCheckedIn,
			wantCode: http.StatusConflict,
		},
		{
			name:     "terminal participation",
			err:      service.ErrParticipationFinal,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "not registered",
			err:      service.ErrParticipationNotFound,
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubParticipationService{
				checkInFn: func(ctx context.Context, tournamentID, participantID uint) error {
					return tt.err
				},
			}
			router := newParticipationTestRouter(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/tournaments/1/check-in", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestParticipationHandlerDisqualify(t *testing.T) {
	svc := &stubParticipationService{
		disqualifyFn: func(ctx context.Context, tournamentID, participantID uint, reason string) error {
			return nil
		},
	}
	router := newParticipationTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tournaments/1/participants/7/disqualify", strings.NewReader(`{"reason":"no-show"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestParticipationHandlerDisqualifyMissingReason(t *testing.T) {
	router := newParticipationTestRouter(&stubParticipationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tournaments/1/participants/7/disqualify", strings.NewReader(`{}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParticipationHandlerWithdraw(t *testing.T) {
	svc := &stubParticipationService{
		withdrawFn: func(ctx context.Context, tournamentID, participantID uint) error {
			return service.ErrParticipationFinal
		},
	}
	router := newParticipationTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tournaments/1/withdraw", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
