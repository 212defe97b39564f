package api

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"ceanalyzer/internal/exporter"
)

// ExportFilename 导出产物固定文件名
const ExportFilename = "cost_effectiveness_analysis.xlsx"

// 下载令牌有效期
const downloadTTL = 10 * time.Minute

// Export 以当前参数运行模型并导出 xlsx
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	bundle, err := h.calc.Aggregate(h.store.Parameters())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "计算结果失败: " + err.Error()})
		return
	}

	path := filepath.Join(h.exportDir, ExportFilename)
	exp := exporter.NewExporter(bundle)
	if err := exp.ExportToFile(path, exporter.ExportOptions{}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}

	run := h.store.RecordRun(path)
	token := h.downloads.put(path, downloadTTL)

	c.JSON(http.StatusOK, gin.H{
		"runId":       run.ID,
		"path":        path,
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport 下载导出的 xlsx 文件（令牌一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接不存在或已过期"})
		return
	}
	h.downloads.delete(token)

	if _, err := os.Stat(item.filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件已不存在"})
		return
	}

	c.FileAttachment(item.filePath, ExportFilename)
}
