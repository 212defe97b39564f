package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ceanalyzer/internal/model"
)

// ParameterView 参数展示行
type ParameterView struct {
	Key       model.ParameterKey `json:"key"`
	Label     string             `json:"label"`
	Unit      string             `json:"unit"`
	Value     float64            `json:"value"`
	BaseValue float64            `json:"baseValue"`
}

// ListParameters 按固定顺序列出 8 个模型参数
// GET /api/parameters
func (h *Handler) ListParameters(c *gin.Context) {
	current := h.store.Parameters()
	base := h.store.BaseParameters()

	views := make([]ParameterView, 0, len(model.ParameterOrder))
	for _, key := range model.ParameterOrder {
		meta, _ := model.Meta(key)
		views = append(views, ParameterView{
			Key:       key,
			Label:     meta.Label,
			Unit:      meta.Unit,
			Value:     current[key],
			BaseValue: base[key],
		})
	}

	c.JSON(http.StatusOK, gin.H{"parameters": views})
}

type updateParameterRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

// UpdateParameter 更新单个参数值
// PATCH /api/parameters/:key
func (h *Handler) UpdateParameter(c *gin.Context) {
	key := model.ParameterKey(c.Param("key"))

	var req updateParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体缺少 value 字段"})
		return
	}

	value, err := h.store.UpdateParameter(key, *req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// ResetParameters 恢复基准参数
// POST /api/parameters/reset
func (h *Handler) ResetParameters(c *gin.Context) {
	h.store.Reset()
	c.JSON(http.StatusOK, gin.H{"reset": true})
}
