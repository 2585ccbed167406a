package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gamermajilis/tournaments-api/internal/api/handler/v1/request"
	"github.com/gamermajilis/tournaments-api/internal/api/handler/v1/response"
	"github.com/gamermajilis/tournaments-api/internal/domain"
	"github.com/gamermajilis/tournaments-api/internal/repository"
	"github.com/gamermajilis/tournaments-api/internal/service"
)

type TournamentService interface {
	Create(ctx context.Context, tournament domain.Tournament) (domain.Tournament, error)
	Get(ctx context.Context, id uint) (domain.Tournament, error)
	Update(ctx context.Context, id uint, upd domain.TournamentUpdate) (domain.Tournament, error)
	UpdateStatus(ctx context.Context, id uint, next domain.TournamentStatus) error
	Delete(ctx context.Context, id uint) error
	AddModerator(ctx context.Context, tournamentID, moderatorID uint) error
	IncrementViewCount(ctx context.Context, id uint) error
	IncrementSpectatorCount(ctx context.Context, id uint) error
	List(ctx context.Context, filter repository.TournamentFilter) ([]domain.Tournament, error)
}

type TournamentHandler struct {
	svc TournamentService
}

func NewTournamentHandler(svc TournamentService) *TournamentHandler {
	return &TournamentHandler{
		svc: svc,
	}
}

// HandleCreateTournament godoc
// @Summary      Create a tournament
// @Description  Creates a tournament in DRAFT status owned by the authenticated user
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateTournamentRequest true "request body"
// @Success      201      {object}   domain.Tournament
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tournaments [post]
// @Security     BearerAuth
func (h *TournamentHandler) HandleCreateTournament(ctx *gin.Context) {
	organizerID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateTournamentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), req.ToDomain(organizerID))
	if err != nil {
		var validationErr domain.ValidationError
		switch {
		case errors.Is(err, service.ErrTournamentNameTaken):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.As(err, &validationErr):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleCreateTournament -> h.svc.Create -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetTournament godoc
// @Summary      Get a tournament
// @Description  Retrieves a tournament by ID and counts the view
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID   path      int  true  "tournament ID"
// @Success      200  {object}  domain.Tournament
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID} [get]
func (h *TournamentHandler) HandleGetTournament(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tournament, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetTournament -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	// A failed view count must not fail the read.
	if err := h.svc.IncrementViewCount(ctx.Request.Context(), id); err != nil {
		zap.L().Warn("failed to count tournament view",
			zap.Uint("tournament_id", id),
			zap.Error(err),
		)
	}

	ctx.JSON(http.StatusOK, tournament)
}

// HandleListTournaments godoc
// @Summary      List tournaments
// @Description  Lists tournaments filtered by status, organizer or name
// @Tags         tournaments
// @Produce      json
// @Param        status        query     string  false  "tournament status"
// @Param        organizer_id  query     int     false  "organizer ID"
// @Param        name          query     string  false  "name substring"
// @Param        limit         query     int     false  "page size"
// @Param        offset        query     int     false  "page offset"
// @Success      200  {array}   domain.Tournament
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments [get]
func (h *TournamentHandler) HandleListTournaments(ctx *gin.Context) {
	var req request.ListTournamentsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	filter := repository.TournamentFilter{
		NameContains: req.Name,
		Limit:        req.Limit,
		Offset:       req.Offset,
	}
	if req.Status != "" {
		status := domain.TournamentStatus(req.Status)
		if !status.Valid() {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown status %q", req.Status)))
			return
		}
		filter.Status = &status
	}
	if req.OrganizerID != 0 {
		filter.OrganizerID = &req.OrganizerID
	}

	tournaments, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("HandleListTournaments -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tournaments)
}

// HandleUpdateTournament godoc
// @Summary      Update a tournament
// @Description  Overwrites the descriptive fields while the tournament is still modifiable
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Param        tournamentID   path      int  true  "tournament ID"
// @Param        request   body      request.UpdateTournamentRequest true "request body"
// @Success      200  {object}  domain.Tournament
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID} [put]
// @Security     BearerAuth
func (h *TournamentHandler) HandleUpdateTournament(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateTournamentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), id, req.ToDomain())
	if err != nil {
		var validationErr domain.ValidationError
		switch {
		case errors.Is(err, service.ErrTournamentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", id))
		case errors.Is(err, service.ErrTournamentNameTaken):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrTournamentLocked):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		case errors.As(err, &validationErr):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleUpdateTournament -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleUpdateTournamentStatus godoc
// @Summary      Change tournament status
// @Description  Moves the tournament along its lifecycle
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Param        tournamentID   path      int  true  "tournament ID"
// @Param        request   body      request.UpdateTournamentStatusRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID}/status [patch]
// @Security     BearerAuth
func (h *TournamentHandler) HandleUpdateTournamentStatus(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateTournamentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.UpdateStatus(ctx.Request.Context(), id, domain.TournamentStatus(req.Status))
	if err != nil {
		var validationErr domain.ValidationError
		switch {
		case errors.Is(err, service.ErrTournamentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", id))
		case errors.Is(err, service.ErrInvalidStatusTransition):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		case errors.As(err, &validationErr):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleUpdateTournamentStatus -> h.svc.UpdateStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteTournament godoc
// @Summary      Delete a tournament
// @Description  Soft deletes the tournament, repeated deletes re-stamp the tombstone
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID   path      int  true  "tournament ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID} [delete]
// @Security     BearerAuth
func (h *TournamentHandler) HandleDeleteTournament(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", id))
			return
		}

		err = fmt.Errorf("HandleDeleteTournament -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddModerator godoc
// @Summary      Add a tournament moderator
// @Description  Grants a user moderator rights on the tournament, repeats are no-ops
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Param        tournamentID   path      int  true  "tournament ID"
// @Param        request   body      request.AddModeratorRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID}/moderators [post]
// @Security     BearerAuth
func (h *TournamentHandler) HandleAddModerator(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddModeratorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.AddModerator(ctx.Request.Context(), id, req.ModeratorID); err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", id))
			return
		}

		err = fmt.Errorf("HandleAddModerator -> h.svc.AddModerator -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSpectateTournament godoc
// @Summary      Count a spectator
// @Description  Increments the tournament's spectator counter
// @Tags         tournaments
// @Produce      json
// @Param        tournamentID   path      int  true  "tournament ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID}/spectate [post]
func (h *TournamentHandler) HandleSpectateTournament(ctx *gin.Context) {
	id, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.IncrementSpectatorCount(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTournamentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", id))
			return
		}

		err = fmt.Errorf("HandleSpectateTournament -> h.svc.IncrementSpectatorCount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
