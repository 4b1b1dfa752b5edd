package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"proforma/internal/service/calculator"
	paramstore "proforma/internal/service/store"
)

// GoalSeekRequest 反推请求
type GoalSeekRequest struct {
	Input  string  `json:"input" binding:"required"`
	Output string  `json:"output" binding:"required"`
	Target float64 `json:"target"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Apply  bool    `json:"apply"`
}

// GoalSeek 反推单个输入使派生指标达到目标值
// POST /api/goal-seek
func (h *Handler) GoalSeek(c *gin.Context) {
	var req GoalSeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	res, err := h.adjuster.Adjust(req.Input, req.Output, req.Target, req.Min, req.Max, req.Apply)
	switch {
	case errors.Is(err, calculator.ErrNoSolution):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "在给定区间内无解"})
		return
	case err != nil:
		c.JSON(goalSeekErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"input":      res.Input,
		"output":     res.Output,
		"value":      res.Value,
		"achieved":   finite(res.Achieved),
		"iterations": res.Iterations,
		"applied":    req.Apply,
		"version":    h.params.Version(),
	}
	if req.Apply {
		resp["outputs"] = outputValues(res.Outputs)
	}
	c.JSON(http.StatusOK, resp)
}

func goalSeekErrorStatus(err error) int {
	switch {
	case errors.Is(err, paramstore.ErrUnknownParameter),
		errors.Is(err, paramstore.ErrFlagParameter),
		errors.Is(err, calculator.ErrUnknownOutput),
		errors.Is(err, calculator.ErrInvalidRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
