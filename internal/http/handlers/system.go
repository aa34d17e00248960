package handlers

import (
	"net/http"

	intconfig "emanifest/internal/config"
	intdb "emanifest/internal/db"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "emanifest"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database ping failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "database connection OK",
		"passengers_table": intdb.HasTable(intconfig.DB, "passengers"),
	})
}
