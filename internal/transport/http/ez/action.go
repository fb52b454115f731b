package ez

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gin-gorm-users/internal/domain"
	resp "gin-gorm-users/internal/transport/http/response"
)

// Binder says where an action's input comes from.
type Binder string

const (
	BindJSON  Binder = "json"  // request body
	BindQuery Binder = "query" // ?a=b
	BindNone  Binder = "none"  // handler reads c.Param itself
)

// EZ registers actions on a router group and shares the logger used for 5xx causes.
type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, log: l}
}

// Action is one endpoint: I is the bound input, O the envelope data.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Status  int // success status, 200 when zero
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction wraps a.Handler so that every outcome is written as an envelope
// with the status that matches the error kind.
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	okStatus := a.Status
	if okStatus == 0 {
		okStatus = http.StatusOK
	}

	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(bindErr, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, resp.Error(http.StatusRequestEntityTooLarge, ""))
				return
			}
			c.JSON(http.StatusBadRequest, resp.Error(http.StatusBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			e.fail(c, err)
			return
		}
		c.JSON(okStatus, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

func (e EZ) fail(c *gin.Context, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		// cause stays in the log; the client gets the generic text
		_ = c.Error(err)
		e.log.Error("request failed",
			zap.String("rid", c.GetString("X-Request-ID")),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(status, resp.Error(status, ""))
		return
	}
	c.JSON(status, resp.Error(status, err.Error()))
}

// StatusOf maps a service error onto its HTTP status.
func StatusOf(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ParamID reads a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.Validation("invalid " + name + " parameter")
	}
	return id, nil
}
