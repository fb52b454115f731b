package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gin-gorm-users/internal/service"
	httpez "gin-gorm-users/internal/transport/http/ez"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, l *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: l}
}

type listQ struct {
	Search   string `form:"search"`
	Page     string `form:"page"`
	PageSize string `form:"pageSize"`
}

// MountAPI registers the /users routes on g.
func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	// GET /users?search=&page=&pageSize=
	httpez.RegisterAction(ez, httpez.Action[listQ, service.ListResult]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (service.ListResult, error) {
			q, err := h.svc.ParsePageQuery(in.Page, in.PageSize, in.Search)
			if err != nil {
				return service.ListResult{}, err
			}
			return h.svc.List(c.Request.Context(), q)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, service.UserView]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (service.UserView, error) {
			id, err := httpez.ParamID(c, "id")
			if err != nil {
				return service.UserView{}, err
			}
			return h.svc.Get(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[service.CreateUserInput, service.UserView]{
		Method: http.MethodPost,
		Path:   "/users/save",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.CreateUserInput) (service.UserView, error) {
			return h.svc.Create(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[service.UpdateUserInput, service.UserView]{
		Method: http.MethodPut,
		Path:   "/users/update/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.UpdateUserInput) (service.UserView, error) {
			id, err := httpez.ParamID(c, "id")
			if err != nil {
				return service.UserView{}, err
			}
			return h.svc.Update(c.Request.Context(), id, *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, service.DeleteResult]{
		Method: http.MethodDelete,
		Path:   "/users/delete/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (service.DeleteResult, error) {
			id, err := httpez.ParamID(c, "id")
			if err != nil {
				return service.DeleteResult{}, err
			}
			return h.svc.Delete(c.Request.Context(), id)
		},
	})
}
