package psychologist

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/middleware"
	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/service/psychologist"
	"github.com/mindwell/clinic-scheduler/pkg/auth"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
	"github.com/mindwell/clinic-scheduler/pkg/httputil"
	"github.com/mindwell/clinic-scheduler/pkg/validator"
)

type Handler struct {
	service   *psychologist.Service
	validator *validator.Validator
}

func NewHandler(service *psychologist.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePsychologistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	psy, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, psy)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid psychologist ID", err))
		return
	}

	psy, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, psy)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid psychologist ID", err))
		return
	}

	var req model.UpdatePsychologistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}

	psy, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, psy)
}

func (h *Handler) List(c *gin.Context) {
	status := model.PsychologistStatus(c.Query("status"))

	psychologists, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, psychologists)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware) {
	manage := authmw.RequireRole(auth.RolePracticeManager)

	psychologists := r.Group("/psychologists")
	{
		psychologists.POST("", manage, h.Create)
		psychologists.GET("", h.List)
		psychologists.GET("/:id", h.Get)
		psychologists.PUT("/:id", manage, h.Update)
	}
}
