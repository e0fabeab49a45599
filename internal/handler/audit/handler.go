package audit

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindwell/clinic-scheduler/internal/middleware"
	"github.com/mindwell/clinic-scheduler/internal/model"
	"github.com/mindwell/clinic-scheduler/internal/service/audit"
	"github.com/mindwell/clinic-scheduler/pkg/auth"
	apperrors "github.com/mindwell/clinic-scheduler/pkg/errors"
	"github.com/mindwell/clinic-scheduler/pkg/httputil"
)

type Handler struct {
	service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AuditFilters{}

	if s := c.Query("actor_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("invalid actor ID", err))
			return
		}
		filters.ActorID = id
	}
	if s := c.Query("entity_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("invalid entity ID", err))
			return
		}
		filters.EntityID = id
	}
	filters.EntityType = c.Query("entity_type")

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

	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	logs, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPagination(c, logs, filters.Page, filters.PageSize, int(total))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authmw *middleware.AuthMiddleware) {
	r.GET("/audit-logs", authmw.RequireRole(auth.RolePracticeManager), h.List)
}
