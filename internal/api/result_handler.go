package api

import (
	"errors"
	"net/http"

	"ElectionSeed/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ResultHandler 开票结果查询接口
type ResultHandler struct {
	resultService *service.ResultService
	logger        *logrus.Logger
}

func NewResultHandler(resultService *service.ResultService, logger *logrus.Logger) *ResultHandler {
	return &ResultHandler{resultService: resultService, logger: logger}
}

// ListDistricts 选举区列表
// GET /api/districts?prefecture=東京
func (h *ResultHandler) ListDistricts(c *gin.Context) {
	list, err := h.resultService.ListDistricts(c.Request.Context(), c.Query("prefecture"))
	if err != nil {
		h.logger.WithError(err).Error("ListDistricts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": list})
}

// GetDistrictResult 选举区候选人得票
// GET /api/districts/:name/results
func (h *ResultHandler) GetDistrictResult(c *gin.Context) {
	res, err := h.resultService.GetDistrictResult(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondError(c, "GetDistrictResult", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetBlockResult 比例区块政党得票
// GET /api/blocks/:name/results
func (h *ResultHandler) GetBlockResult(c *gin.Context) {
	res, err := h.resultService.GetBlockResult(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondError(c, "GetBlockResult", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ResultHandler) respondError(c *gin.Context, op string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.logger.WithError(err).Error(op + " failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
