package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func InitRouter(db *gorm.DB) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		InitScanRoutes(api, db)
		InitReportRoutes(api)
	}

	return router
}
