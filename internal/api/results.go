package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetResults 以当前参数运行模型，返回完整结果包
// GET /api/results
func (h *Handler) GetResults(c *gin.Context) {
	bundle, err := h.calc.Aggregate(h.store.Parameters())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算结果失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, bundle)
}
