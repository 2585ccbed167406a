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
	"github.com/gamermajilis/tournaments-api/internal/repository"
	"github.com/gamermajilis/tournaments-api/internal/service"
)

type stubTournamentService struct {
	createFn       func(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	getFn          func(ctx context.Context, id uint) (domain.Tournament, error)
	updateFn       func(ctx context.Context, id uint, upd domain.TournamentUpdate) (domain.Tournament, error)
	updateStatusFn func(ctx context.Context, id uint, next domain.TournamentStatus) error
	deleteFn       func(ctx context.Context, id uint) error
}

func (s *stubTournamentService) Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
	return s.createFn(ctx, tournament)
}

func (s *stubTournamentService) Get(ctx context.Context, id uint) (domain.Tournament, error) {
	return s.getFn(ctx, id)
}

func (s *stubTournamentService) Update(ctx context.Context, id uint, upd domain.TournamentUpdate) (domain.Tournament, error) {
	return s.updateFn(ctx, id, upd)
}

func (s *stubTournamentService) UpdateStatus(ctx context.Context, id uint, next domain.TournamentStatus) error {
	return s.updateStatusFn(ctx, id, next)
}

func (s *stubTournamentService) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubTournamentService) AddModerator(ctx context.Context, tournamentID, moderatorID uint) error {
	return nil
}

func (s *stubTournamentService) IncrementViewCount(ctx context.Context, id uint) error {
	return nil
}

func (s *stubTournamentService) IncrementSpectatorCount(ctx context.Context, id uint) error {
	return nil
}

func (s *stubTournamentService) List(ctx context.Context, filter repository.TournamentFilter) ([]domain.Tournament, error) {
	return nil, nil
}

func newTournamentTestRouter(svc TournamentService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewTournamentHandler(svc)

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, uint(42))
	})
	router.GET("/tournaments/:tournamentID", handler.HandleGetTournament)
	router.POST("/tournaments", handler.HandleCreateTournament)
	router.PATCH("/tournaments/:tournamentID/status", handler.HandleUpdateTournamentStatus)
	router.DELETE("/tournaments/:tournamentID", handler.HandleDeleteTournament)

	return router
}

func TestTournamentHandlerCreate(t *testing.T) {
	svc := &stubTournamentService{
		createFn: func(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
			tournament.ID = 1
			return tournament, nil
		},
	}
	router := newTournamentTestRouter(svc)

	body := `{"name":"Spring Cup","game_title":"Valorant","max_participants":16,"start_date":"2026-10-01T18:00:00Z"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tournaments", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Spring Cup")
}

func TestTournamentHandlerCreateInvalidBody(t *testing.T) {
	router := newTournamentTestRouter(&stubTournamentService{})

	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing name",
			body: `{"game_title":"Valorant","max_participants":16,"start_date":"2026-10-01T18:00:00Z"}`,
		},
		{
			name: "name with trailing whitespace",
			body: `{"name":"Spring Cup ","game_title":"Valorant","max_participants":16,"start_date":"2026-10-01T18:00:00Z"}`,
		},
		{
			name: "zero capacity",
			body: `{"name":"Spring Cup","game_title":"Valorant","max_participants":0,"start_date":"2026-10-01T18:00:00Z"}`,
		},
		{
			name: "not json",
			body: `not json`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/tournaments", strings.NewReader(tt.body))
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTournamentHandlerCreateNameTaken(t *testing.T) {
	svc := &stubTournamentService{
		createFn: func(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error) {
			return domain.Tournament{}, service.ErrTournamentNameTaken
		},
	}
	router := newTournamentTestRouter(svc)

	body := `{"name":"Spring Cup","game_title":"Valorant","max_participants":16,"start_date":"2026-10-01T18:00:00Z"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tournaments", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTournamentHandlerGet(t *testing.T) {
	svc := &stubTournamentService{
		getFn: func(ctx context.Context, id uint) (domain.Tournament, error) {
			return domain.Tournament{ID: id, Name: "Spring Cup"}, nil
		},
	}
	router := newTournamentTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tournaments/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Spring Cup")
}

func TestTournamentHandlerGetNotFound(t *testing.T) {
	svc := &stubTournamentService{
		getFn: func(ctx context.Context, id uint) (domain.Tournament, error) {
			return domain.Tournament{}, service.ErrTournamentNotFound
		},
	}
	router := newTournamentTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tournaments/987", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTournamentHandlerGetBadID(t *testing.T) {
	router := newTournamentTestRouter(&stubTournamentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tournaments/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTournamentHandlerUpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "legal transition",
			err:      nil,
			wantCode: http.StatusNoContent,
		},
		{
			name:     "illegal transition",
			err:      service.ErrInvalidStatusTransition,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "unknown status",
			err:      domain.ValidationError{Field: "status", Reason: "unknown status"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing tournament",
			err:      service.ErrTournamentNotFound,
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubTournamentService{
				updateStatusFn: func(ctx context.Context, id uint, next domain.TournamentStatus) error {
					return tt.err
				},
			}
			router := newTournamentTestRouter(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/tournaments/1/status", strings.NewReader(`{"status":"REGISTRATION_OPEN"}`))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestTournamentHandlerDelete(t *testing.T) {
	svc := &stubTournamentService{
		deleteFn: func(ctx context.Context, id uint) error {
			return nil
		},
	}
	router := newTournamentTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/tournaments/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
