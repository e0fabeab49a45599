package availability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/middleware"
	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/service/schedule"
	"github.com/mindwell/clinic-scheduler/pkg/auth"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
	"github.com/mindwell/clinic-scheduler/pkg/httputil"
	"github.com/mindwell/clinic-scheduler/pkg/validator"
)

type Handler struct {
	service   *schedule.Service
	validator *validator.Validator
}

func NewHandler(service *schedule.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) CreatePattern(c *gin.Context) {
	psychologistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid psychologist ID", err))
		return
	}

	var req model.CreateAvailabilityPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	pattern, err := h.service.CreatePattern(c.Request.Context(), middleware.ActorFrom(c), psychologistID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, pattern)
}

func (h *Handler) ListPatterns(c *gin.Context) {
	psychologistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid psychologist ID", err))
		return
	}

	patterns, err := h.service.ListPatterns(c.Request.Context(), psychologistID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, patterns)
}

func (h *Handler) UpdatePattern(c *gin.Context) {
	id, err := uuid.Parse(c.Param("patternId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid pattern ID", err))
		return
	}

	var req model.UpdateAvailabilityPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	pattern, err := h.service.UpdatePattern(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, pattern)
}

func (h *Handler) DisablePattern(c *gin.Context) {
	id, err := uuid.Parse(c.Param("patternId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid pattern ID", err))
		return
	}

	if err := h.service.DisablePattern(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"disabled": true})
}

// ListSlots returns the open bookable slots for a psychologist. from/to
// are RFC 3339 timestamps; both optional.
func (h *Handler) ListSlots(c *gin.Context) {
	psychologistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid psychologist ID", err))
		return
	}

	var from, to time.Time
	if s := c.Query("from"); s != "" {
		if from, err = time.Parse(time.RFC3339, s); err != nil {
			httputil.RespondWithError(c, apperrors.Validation("from must be RFC 3339", err))
			return
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = time.Parse(time.RFC3339, s); err != nil {
			httputil.RespondWithError(c, apperrors.Validation("to must be RFC 3339", err))
			return
		}
	}

	slots, err := h.service.ListOpenSlots(c.Request.Context(), psychologistID, from, to)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, slots)
}

// RegenerateSlots refreshes the slot inventory on demand. The background
// worker does this on a schedule; the endpoint exists for admin tooling.
func (h *Handler) RegenerateSlots(c *gin.Context) {
	psychologistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid psychologist ID", err))
		return
	}

	created, err := h.service.RegenerateSlots(c.Request.Context(), psychologistID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"slots_created": created})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware, slotCache *middleware.ResponseCache) {
	manage := authmw.RequireRole(auth.RolePsychologist, auth.RolePracticeManager)

	psychologists := r.Group("/psychologists/:id")
	{
		psychologists.GET("/slots", slotCache.Cached(), h.ListSlots)
		psychologists.GET("/availability", h.ListPatterns)
		psychologists.POST("/availability", manage, h.CreatePattern)
		psychologists.POST("/slots/regenerate", manage, h.RegenerateSlots)
	}

	patterns := r.Group("/availability")
	{
		patterns.PUT("/:patternId", manage, h.UpdatePattern)
		patterns.DELETE("/:patternId", manage, h.DisablePattern)
	}
}
