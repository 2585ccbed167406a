package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamermajilis/tournaments-api/internal/api/handler/v1/request"
	"github.com/gamermajilis/tournaments-api/internal/api/handler/v1/response"
	"github.com/gamermajilis/tournaments-api/internal/domain"
	"github.com/gamermajilis/tournaments-api/internal/service"
)

type ParticipationService interface {
	Register(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error)
	Get(ctx context.Context, tournamentID, participantID uint) (domain.Participation, error)
	CheckIn(ctx context.Context, tournamentID, participantID uint) error
	Disqualify(ctx context.Context, tournamentID, participantID uint, reason string) error
	SubmitMatchResult(ctx context.Context, tournamentID, participantID uint, won bool) error
	Withdraw(ctx context.Context, tournamentID, participantID uint) error
	ListByTournament(ctx context.Context, tournamentID uint) ([]domain.Participation, error)
	ListByParticipant(ctx context.Context, participantID uint) ([]domain.Participation, error)
}

type ParticipationHandler struct {
	svc ParticipationService
}

func NewParticipationHandler(svc ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{
		svc: svc,
	}
}

// HandleRegister godoc
// @Summary      Register for a tournament
// @Description  Registers the authenticated user, respecting the capacity limit
// @Tags         participations
// @Produce      json
// @Param        tournamentID   path      int  true  "tournament ID"
// @Success      201  {object}  domain.Participation
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID}/register [post]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleRegister(ctx *gin.Context) {
	tournamentID, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participation, err := h.svc.Register(ctx.Request.Context(), tournamentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTournamentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tournament", "ID", tournamentID))
		case errors.Is(err, service.ErrAlreadyRegistered),
			errors.Is(err, service.ErrTournamentFull):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrRegistrationClosed):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		default:
			err = fmt.Errorf("HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, participation)
}

// HandleWithdraw godoc
// @Summary      Withdraw from a tournament
// @Description  Withdraws the authenticated user and releases their slot
// @Tags         participations
// @Produce      json
// @Param        tournamentID   path      int  true  "tournament ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID}/withdraw [post]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleWithdraw(ctx *gin.Context) {
	tournamentID, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Withdraw(ctx.Request.Context(), tournamentID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrParticipationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("participation", "tournamentID", tournamentID))
		case errors.Is(err, service.ErrParticipationFinal):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		default:
			err = fmt.Errorf("HandleWithdraw -> h.svc.Withdraw -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCheckIn godoc
// @Summary      Check in to a tournament
// @Description  Marks the authenticated user as present shortly before the start
// @Tags         participations
// @Produce      json
// @Param        tournamentID   path      int  true  "tournament ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID}/check-in [post]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleCheckIn(ctx *gin.Context) {
	tournamentID, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.CheckIn(ctx.Request.Context(), tournamentID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrParticipationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("participation", "tournamentID", tournamentID))
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrParticipationFinal):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		default:
			err = fmt.Errorf("HandleCheckIn -> h.svc.CheckIn -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListParticipants godoc
// @Summary      List tournament participants
// @Tags         participations
// @Produce      json
// @Param        tournamentID   path      int  true  "tournament ID"
// @Success      200  {array}   domain.Participation
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID}/participants [get]
func (h *ParticipationHandler) HandleListParticipants(ctx *gin.Context) {
	tournamentID, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participations, err := h.svc.ListByTournament(ctx.Request.Context(), tournamentID)
	if err != nil {
		err = fmt.Errorf("HandleListParticipants -> h.svc.ListByTournament -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participations)
}

// HandleGetParticipation godoc
// @Summary      Get a single participation
// @Tags         participations
// @Produce      json
// @Param        tournamentID    path      int  true  "tournament ID"
// @Param        participantID   path      int  true  "participant ID"
// @Success      200  {object}  domain.Participation
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID}/participants/{participantID} [get]
func (h *ParticipationHandler) HandleGetParticipation(ctx *gin.Context) {
	tournamentID, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participantID, respErr := parseIDParam(ctx, "participantID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participation, err := h.svc.Get(ctx.Request.Context(), tournamentID, participantID)
	if err != nil {
		if errors.Is(err, service.ErrParticipationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("participation", "participantID", participantID))
			return
		}

		err = fmt.Errorf("HandleGetParticipation -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participation)
}

// HandleDisqualifyParticipant godoc
// @Summary      Disqualify a participant
// @Description  Marks the participant as disqualified with a required reason
// @Tags         participations
// @Accept       json
// @Produce      json
// @Param        tournamentID    path      int  true  "tournament ID"
// @Param        participantID   path      int  true  "participant ID"
// @Param        request   body      request.DisqualifyParticipantRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID}/participants/{participantID}/disqualify [post]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleDisqualifyParticipant(ctx *gin.Context) {
	tournamentID, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participantID, respErr := parseIDParam(ctx, "participantID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DisqualifyParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.Disqualify(ctx.Request.Context(), tournamentID, participantID, req.Reason)
	if err != nil {
		var validationErr domain.ValidationError
		switch {
		case errors.Is(err, service.ErrParticipationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("participation", "participantID", participantID))
		case errors.Is(err, service.ErrAlreadyDisqualified):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.As(err, &validationErr):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleDisqualifyParticipant -> h.svc.Disqualify -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSubmitMatchResult godoc
// @Summary      Record a match result
// @Description  Adds a win or a loss to a confirmed participant's record
// @Tags         participations
// @Accept       json
// @Produce      json
// @Param        tournamentID    path      int  true  "tournament ID"
// @Param        participantID   path      int  true  "participant ID"
// @Param        request   body      request.MatchResultRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tournaments/{tournamentID}/participants/{participantID}/results [post]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleSubmitMatchResult(ctx *gin.Context) {
	tournamentID, respErr := parseIDParam(ctx, "tournamentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participantID, respErr := parseIDParam(ctx, "participantID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MatchResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.SubmitMatchResult(ctx.Request.Context(), tournamentID, participantID, *req.Won)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrParticipationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("participation", "participantID", participantID))
		case errors.Is(err, service.ErrParticipationNotConfirmed):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(err))
		default:
			err = fmt.Errorf("HandleSubmitMatchResult -> h.svc.SubmitMatchResult -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListUserParticipations godoc
// @Summary      List a user's participations
// @Description  Lists every tournament entry of one participant, oldest first
// @Tags         participations
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Success      200  {array}   domain.Participation
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/{userID}/participations [get]
func (h *ParticipationHandler) HandleListUserParticipations(ctx *gin.Context) {
	userID, respErr := parseIDParam(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participations, err := h.svc.ListByParticipant(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("HandleListUserParticipations -> h.svc.ListByParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participations)
}
