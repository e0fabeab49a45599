package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/middleware"
	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/service/catalog"
	"github.com/mindwell/clinic-scheduler/pkg/auth"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
	"github.com/mindwell/clinic-scheduler/pkg/httputil"
	"github.com/mindwell/clinic-scheduler/pkg/validator"
)

type Handler struct {
	service   *catalog.Service
	validator *validator.Validator
}

func NewHandler(service *catalog.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	svc, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, svc)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service ID", err))
		return
	}

	svc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, svc)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service ID", err))
		return
	}

	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	svc, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, svc)
}

func (h *Handler) List(c *gin.Context) {
	services, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, services)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware) {
	services := r.Group("/services")
	{
		services.POST("", authmw.RequireRole(auth.RolePracticeManager), h.Create)
		services.GET("", h.List)
		services.GET("/:id", h.Get)
		services.PUT("/:id", authmw.RequireRole(auth.RolePracticeManager), h.Update)
	}
}
