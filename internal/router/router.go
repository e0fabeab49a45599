package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mindwell/clinic-scheduler/internal/config"
	"github.com/mindwell/clinic-scheduler/internal/handler/appointment"
	"github.com/mindwell/clinic-scheduler/internal/handler/audit"
	"github.com/mindwell/clinic-scheduler/internal/handler/availability"
	"github.com/mindwell/clinic-scheduler/internal/handler/catalog"
	"github.com/mindwell/clinic-scheduler/internal/handler/health"
	"github.com/mindwell/clinic-scheduler/internal/handler/patient"
	"github.com/mindwell/clinic-scheduler/internal/handler/psychologist"
	"github.com/mindwell/clinic-scheduler/internal/middleware"
)

type Router struct {
	engine *gin.Engine
	authmw *middleware.AuthMiddleware

	healthH       *health.Handler
	psychologistH *psychologist.Handler
	patientH      *patient.Handler
	catalogH      *catalog.Handler
	availabilityH *availability.Handler
	appointmentH  *appointment.Handler
	auditH        *audit.Handler

	slotCache *middleware.ResponseCache
	metrics   *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(
	cfg *config.Config,
	authmw *middleware.AuthMiddleware,
	healthH *health.Handler,
	psychologistH *psychologist.Handler,
	patientH *patient.Handler,
	catalogH *catalog.Handler,
	availabilityH *availability.Handler,
	appointmentH *appointment.Handler,
	auditH *audit.Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:        engine,
		authmw:        authmw,
		healthH:       healthH,
		psychologistH: psychologistH,
		patientH:      patientH,
		catalogH:      catalogH,
		availabilityH: availabilityH,
		appointmentH:  appointmentH,
		auditH:        auditH,
		slotCache:     middleware.NewResponseCache(cfg.Booking.SlotCacheTTL),
		metrics: &routerMetrics{
			requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
			}, []string{"method", "path", "status"}),
			requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			}, []string{"method", "path", "status"}),
		},
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.metricsMiddleware(),
		middleware.Timeout(cfg.Server.RequestTimeout),
		middleware.CORS(middleware.DefaultCORSConfig()),
	)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.healthH.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	protected := api.Group("")
	protected.Use(r.authmw.Authenticate())

	r.psychologistH.RegisterRoutes(protected, r.authmw)
	r.patientH.RegisterRoutes(protected, r.authmw)
	r.catalogH.RegisterRoutes(protected, r.authmw)
	r.availabilityH.RegisterRoutes(protected, r.authmw, r.slotCache)
	r.appointmentH.RegisterRoutes(protected, r.authmw)
	r.auditH.RegisterRoutes(protected, r.authmw)
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
