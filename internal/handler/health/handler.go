package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	db    *sqlx.DB
	redis *redis.Client
}

func NewHandler(db *sqlx.DB, redisClient *redis.Client) *Handler {
	return &Handler{db: db, redis: redisClient}
}

// Live reports process liveness only.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks the dependencies the API cannot serve without.
func (h *Handler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": checks})
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health/live", h.Live)
	r.GET("/health/ready", h.Ready)
}
