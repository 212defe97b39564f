package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ceanalyzer/internal/model"
)

// Version 应用版本
const Version = "1.0.0"

// StatusResponse 系统状态响应
type StatusResponse struct {
	Version         string  `json:"version"`         // 应用版本
	ParameterCount  int     `json:"parameterCount"`  // 模型参数个数
	Modified        bool    `json:"modified"`        // 参数是否偏离基准值
	LowerMultiplier float64 `json:"lowerMultiplier"` // 敏感性分析下界乘数
	UpperMultiplier float64 `json:"upperMultiplier"` // 敏感性分析上界乘数
	ExportCount     int     `json:"exportCount"`     // 本次会话导出次数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	bounds := h.calc.Bounds()

	c.JSON(http.StatusOK, StatusResponse{
		Version:         Version,
		ParameterCount:  len(model.ParameterOrder),
		Modified:        h.store.Modified(),
		LowerMultiplier: bounds.Lower,
		UpperMultiplier: bounds.Upper,
		ExportCount:     len(h.store.Runs()),
	})
}
