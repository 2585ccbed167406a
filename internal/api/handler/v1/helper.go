package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gamermajilis/tournaments-api/internal/api/handler/v1/response"
	"github.com/gamermajilis/tournaments-api/internal/api/middleware"
)

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("%v (%v) is not a valid ID", name, raw))
	}

	return uint(id), nil
}

func getUserIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, response.ErrUnauthorized("user is not authenticated")
	}

	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return 0, response.ErrInternalServerError(errors.New("user ID in context has an unexpected type"))
	}

	return userID, nil
}
