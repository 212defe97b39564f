package api

import (
	"github.com/gin-gonic/gin"

	"ceanalyzer/internal/calculator"
	"ceanalyzer/internal/store"
)

// Handler API 处理器
type Handler struct {
	store     *store.AnalysisStore
	calc      *calculator.Calculator
	exportDir string
	downloads *exportDownloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.AnalysisStore, calc *calculator.Calculator, exportDir string) *Handler {
	return &Handler{
		store:     st,
		calc:      calc,
		exportDir: exportDir,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 参数管理
	router.GET("/parameters", h.ListParameters)
	router.PATCH("/parameters/:key", h.UpdateParameter)
	router.POST("/parameters/reset", h.ResetParameters)

	// 结果查询
	router.GET("/results", h.GetResults)

	// 结果导出
	router.POST("/export", h.Export)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}
