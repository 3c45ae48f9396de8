package httperr

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Machine-readable error codes; gateways only look at the status.
const (
	CodeInvalidRequest = "invalid_request"
	CodeInvalidEvent   = "invalid_event"
	CodeInProgress     = "in_progress"
	CodeNotFound       = "not_found"
	CodeInternal       = "internal"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func newResponse(status int, code, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Code = code
	resp.Error.Message = msg
	return resp
}

// AbortWithError records err on the context for the error middleware and writes the envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, newResponse(status, "", msg, detail), err)
}

func BadRequest(c *gin.Context, err error, code, msg string, detail any) {
	abort(c, newResponse(http.StatusBadRequest, code, msg, detail), err)
}

func NotFound(c *gin.Context, err error, msg string) {
	abort(c, newResponse(http.StatusNotFound, CodeNotFound, msg, nil), err)
}

// InProgress answers 409 with Retry-After so the sender redelivers later.
func InProgress(c *gin.Context, err error, msg string, retryAfter time.Duration) {
	if retryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	}
	abort(c, newResponse(http.StatusConflict, CodeInProgress, msg, nil), err)
}

func Internal(c *gin.Context, err error, msg string) {
	abort(c, newResponse(http.StatusInternalServerError, CodeInternal, msg, nil), err)
}

func abort(c *gin.Context, resp Response, err error) {
	if err == nil {
		panic("httperr: err cannot be nil")
	}
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
