package backup

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/backup/export", ExportBackup)
	router.POST("/backup/restore", RestoreBackup)
	router.GET("/diagnostics", Diagnostics)
}
