package patient

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/middleware"
	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/service/patient"
	"github.com/mindwell/clinic-scheduler/pkg/auth"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
	"github.com/mindwell/clinic-scheduler/pkg/httputil"
	"github.com/mindwell/clinic-scheduler/pkg/validator"
)

type Handler struct {
	service   *patient.Service
	validator *validator.Validator
}

func NewHandler(service *patient.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	p, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, p)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid patient ID", err))
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid patient ID", err))
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}

	p, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) List(c *gin.Context) {
	status := model.PatientStatus(c.Query("status"))

	patients, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware) {
	staff := authmw.RequireRole(auth.RolePsychologist, auth.RolePracticeManager)

	patients := r.Group("/patients")
	{
		patients.POST("", h.Create)
		patients.GET("", staff, h.List)
		patients.GET("/:id", h.Get)
		patients.PUT("/:id", h.Update)
	}
}
