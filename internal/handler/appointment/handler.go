package appointment

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/middleware"
	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/service/audit"
	"github.com/mindwell/clinic-scheduler/internal/service/booking"
	"github.com/mindwell/clinic-scheduler/pkg/auth"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
	"github.com/mindwell/clinic-scheduler/pkg/httputil"
	"github.com/mindwell/clinic-scheduler/pkg/validator"
)

type Handler struct {
	service   *booking.Service
	validator *validator.Validator
}

func NewHandler(service *booking.Service, v *validator.Validator) *Handler {
	return &Handler{service: service, validator: v}
}

func (h *Handler) Book(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	appt, err := h.service.Book(c.Request.Context(), middleware.ActorFrom(c), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, appt)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID", err))
		return
	}

	appt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appt)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{}

	if s := c.Query("psychologist_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("invalid psychologist ID", err))
			return
		}
		filters.PsychologistID = id
	}
	if s := c.Query("patient_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("invalid patient ID", err))
			return
		}
		filters.PatientID = id
	}
	if s := c.Query("status"); s != "" {
		filters.Status = model.AppointmentStatus(s)
	}
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("start_date must be RFC 3339", err))
			return
		}
		filters.StartDate = t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("end_date must be RFC 3339", err))
			return
		}
		filters.EndDate = t
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.service.MarkNoShow)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID", err))
		return
	}

	var req model.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	appt, err := h.service.Cancel(c.Request.Context(), middleware.ActorFrom(c), id, req.Reason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appt)
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID", err))
		return
	}

	var req model.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	replacement, err := h.service.Reschedule(c.Request.Context(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, replacement)
}

func (h *Handler) SetMeetingRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID", err))
		return
	}

	var req struct {
		MeetingRoomRef string `json:"meeting_room_ref" validate:"required,max=512"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid request body", err))
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	appt, err := h.service.SetMeetingRoom(c.Request.Context(), middleware.ActorFrom(c), id, req.MeetingRoomRef)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appt)
}

// transition handles the body-less status endpoints.
func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, actor audit.Actor, id uuid.UUID) (*model.Appointment, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID", err))
		return
	}

	appt, err := fn(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appt)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware) {
	staff := authmw.RequireRole(auth.RolePsychologist, auth.RolePracticeManager)

	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Book)
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.POST("/:id/confirm", h.Confirm)
		appointments.POST("/:id/cancel", h.Cancel)
		appointments.POST("/:id/reschedule", h.Reschedule)
		appointments.POST("/:id/complete", staff, h.Complete)
		appointments.POST("/:id/no-show", staff, h.MarkNoShow)
		appointments.PUT("/:id/meeting-room", staff, h.SetMeetingRoom)
	}
}
