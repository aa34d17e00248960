package handlers

import (
	"net/http"

	"emanifest/internal/http/middleware"
	"emanifest/internal/services"

	"github.com/gin-gonic/gin"
)

func reportService(c *gin.Context) services.ReportService {
	return services.ReportService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/dashboard/stats
func GetDashboardStats(c *gin.Context) {
	stats, err := reportService(c).Dashboard()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GET /api/compliance
func GetComplianceReport(c *gin.Context) {
	rows, total, err := reportService(c).Compliance(
		queryInt64(c, "parkId"),
		queryInt(c, "page", 1),
		queryInt(c, "limit", 10),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": rows, "total": total})
}

type complianceStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/compliance/:id/status - manual review override.
func SetComplianceStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req complianceStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := reportService(c).SetComplianceStatus(id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "compliance status updated"})
}
