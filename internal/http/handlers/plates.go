package handlers

import (
	"net/http"

	"emanifest/internal/services"

	"github.com/gin-gonic/gin"
)

type validatePlateRequest struct {
	PlateNumber string `json:"plateNumber"`
}

// POST /api/manifests/validate-plate - resolves the open manifest for a
// vehicle (case-insensitive) and previews the next seat without reserving it.
func ValidatePlate(c *gin.Context) {
	var req validatePlateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PlateService{}
	preview, err := svc.ValidatePlate(req.PlateNumber)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"manifest": preview})
}
