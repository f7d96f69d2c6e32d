package calculator

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

// Сообщения клиентских и серверных ошибок.
const (
	msgDivisionByZero = "Cannot divide by zero"
	msgNonFinite      = "Operands and result must be finite numbers"
	msgStorage        = "Storage unavailable"
	msgInternal       = "Internal server error"
)

// Controller — маршруты калькулятора: операции, история, выгрузка.
type Controller struct {
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт контроллер калькулятора.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.POST("/add", c.calculate(domain.OpAddition))
	r.POST("/subtract", c.calculate(domain.OpSubtraction))
	r.POST("/multiply", c.calculate(domain.OpMultiplication))
	r.POST("/divide", c.calculate(domain.OpDivision))
	r.GET("/history", c.history)
	r.GET("/export-file", c.exportFile)
}

// @Summary Выполнить операцию
// @Description Принимает x и y, считает результат, сохраняет запись и возвращает её без времени.
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body CalculationRequest true "Операнды"
// @Success 200 {object} CalculationResponse
// @Failure 400 {object} ErrorResponse "Деление на ноль"
// @Failure 422 {object} ErrorResponse "Невалидное тело запроса"
// @Failure 500 {object} ErrorResponse "Хранилище недоступно"
// @Router /add [post]
func (c *Controller) calculate(op domain.Operation) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req CalculationRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			err = fmt.Errorf("%w: %w", domain.ErrValidation, err)
			c.log.Warn("calculate bind failed", "operation", op, "error", err)
			ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: err.Error()})
			return
		}

		calc, err := c.uc.Calculate(ctx.Request.Context(), op, *req.X, *req.Y)
		if err != nil {
			c.writeError(ctx, "calculate", err)
			return
		}
		ctx.JSON(http.StatusOK, newCalculationResponse(calc))
	}
}

// @Summary История операций
// @Description Все записи, новые первыми.
// @Tags calculator
// @Produce json
// @Success 200 {object} HistoryResponse
// @Failure 500 {object} ErrorResponse "Хранилище недоступно"
// @Router /history [get]
func (c *Controller) history(ctx *gin.Context) {
	list, err := c.uc.History(ctx.Request.Context())
	if err != nil {
		c.writeError(ctx, "history", err)
		return
	}
	ctx.JSON(http.StatusOK, NewHistoryResponse(list))
}

// @Summary Выгрузка истории файлом
// @Description История с моментом выгрузки, отдаётся вложением calculator_export_YYYYMMDD_HHMMSS.json.
// @Tags calculator
// @Produce json
// @Success 200 {object} ExportResponse
// @Failure 500 {object} ErrorResponse "Хранилище недоступно"
// @Router /export-file [get]
func (c *Controller) exportFile(ctx *gin.Context) {
	exp, err := c.uc.Export(ctx.Request.Context())
	if err != nil {
		c.writeError(ctx, "export", err)
		return
	}
	body, err := RenderExport(exp)
	if err != nil {
		c.writeError(ctx, "export", err)
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename="+exp.FileName())
	ctx.Data(http.StatusOK, "application/json", body)
}

// writeError переводит ошибку use case в HTTP-статус и тело {"detail": ...}.
func (c *Controller) writeError(ctx *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, domain.ErrDivisionByZero):
		c.log.Warn(action+" rejected", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Detail: msgDivisionByZero})
	case errors.Is(err, domain.ErrNonFinite):
		c.log.Warn(action+" rejected", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Detail: msgNonFinite})
	case errors.Is(err, domain.ErrInvalidArgument):
		c.log.Warn(action+" rejected", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
	case errors.Is(err, domain.ErrStorageUnavailable):
		c.log.Error(action+" failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Detail: msgStorage})
	default:
		c.log.Error(action+" failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Detail: msgInternal})
	}
}
