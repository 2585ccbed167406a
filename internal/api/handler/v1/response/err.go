package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the payload rendered for every non-2xx response.
type Err struct {
	Err error `json:"-"` // low-level runtime error, never exposed

	StatusCode int    `json:"status"`          // http response status code
	StatusText string `json:"statusText"`      // user-level status message
	ErrorText  string `json:"error,omitempty"` // application-level error message
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode == http.StatusInternalServerError {
		zap.L().Error("internal server error",
			zap.String("request_id", requestid.Get(ctx)),
			zap.Error(err.Err),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusBadRequest,
		StatusText: "Bad request.",
		ErrorText:  err.Error(),
	}
}

func ErrNotFound(object, key string, value any) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		StatusText: "Resource not found.",
		ErrorText:  fmt.Sprintf("%v with %v (%v) not found", object, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusConflict,
		StatusText: "Conflict.",
		ErrorText:  err.Error(),
	}
}

func ErrUnprocessableEntity(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusUnprocessableEntity,
		StatusText: "Unprocessable entity.",
		ErrorText:  err.Error(),
	}
}

func ErrUnauthorized(message string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		StatusText: "Unauthorized.",
		ErrorText:  message,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:        err,
		StatusCode: http.StatusInternalServerError,
		StatusText: "Internal server error.",
		ErrorText:  "something went wrong",
	}
}
