package api

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册导入与查询接口
func RegisterRoutes(r gin.IRouter, importHandler *ImportHandler, resultHandler *ResultHandler) {
	r.POST("/import", importHandler.RunImport)
	r.GET("/api/runs", importHandler.ListRuns)
	r.GET("/api/districts", resultHandler.ListDistricts)
	r.GET("/api/districts/:name/results", resultHandler.GetDistrictResult)
	r.GET("/api/blocks/:name/results", resultHandler.GetBlockResult)
}
