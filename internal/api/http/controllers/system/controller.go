package system

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"calcHistory/internal/ports"
)

// Controller — системные маршруты: корень API, liveness, readiness.
type Controller struct {
	repo ports.ICalculationRepository
	log  *slog.Logger
}

// New создаёт системный контроллер.
func New(repo ports.ICalculationRepository, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{repo: repo, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/", c.root)
	r.GET("/liveness", c.live)
	r.GET("/readyness", c.ready)
}

func (c *Controller) root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Calculator API is running"})
}

func (c *Controller) live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (c *Controller) ready(ctx *gin.Context) {
	if err := c.repo.Ping(ctx.Request.Context()); err != nil {
		c.log.Warn("ready check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
