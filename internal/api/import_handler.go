package api

import (
	"errors"
	"net/http"
	"strconv"

	"ElectionSeed/internal/interfaces"
	"ElectionSeed/internal/model"
	"ElectionSeed/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ImportHandler struct {
	importService *service.ImportService
	runs          interfaces.ImportRunRepository
	logger        *logrus.Logger
}

func NewImportHandler(importService *service.ImportService, runs interfaces.ImportRunRepository, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		runs:          runs,
		logger:        logger,
	}
}

// RunImport 重新解析源文件目录并整体重建选举表
// POST /import
func (h *ImportHandler) RunImport(c *gin.Context) {
	summary, err := h.importService.Run(c.Request.Context())
	if err != nil {
		h.logger.Errorf("导入失败: %v", err)
		c.JSON(importStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListRuns 最近的导入记录
// GET /api/runs?limit=20
func (h *ImportHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := h.runs.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("ListRuns failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": runs})
}

// importStatus 源数据问题返回 422，其余按服务端错误处理
func importStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrImportRunning):
		return http.StatusConflict
	case errors.Is(err, model.ErrColumnMismatch),
		errors.Is(err, model.ErrMalformedNumber),
		errors.Is(err, model.ErrDuplicateKey),
		errors.Is(err, model.ErrLookupMiss):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
