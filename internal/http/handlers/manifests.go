package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"emanifest/internal/http/middleware"
	"emanifest/internal/repositories"
	"emanifest/internal/services"

	"github.com/gin-gonic/gin"
)

func manifestService(c *gin.Context) services.ManifestService {
	return services.ManifestService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/manifests - agent registers a vehicle and journey.
func CreateManifest(c *gin.Context) {
	var in services.CreateManifestInput
	if !BindJSONOrError(c, &in) {
		return
	}

	// Agent tokens always create under their own identity.
	if middleware.AuthRole(c) == "agent" {
		in.AgentID = middleware.AuthUserID(c)
	}

	m, err := manifestService(c).Create(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"manifest": m})
}

// PUT /api/manifests/:id/lock - finalize; no further passengers accepted.
func LockManifest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := manifestService(c).Lock(id); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "manifest locked"})
}

// GET /api/manifests/:id
func GetManifest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := manifestService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"manifest": m})
}

func manifestFilterFromQuery(c *gin.Context) repositories.ManifestFilter {
	return repositories.ManifestFilter{
		Search:  c.Query("search"),
		ParkID:  queryInt64(c, "parkId"),
		AgentID: queryInt64(c, "agentId"),
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", 10),
	}
}

// GET /api/manifests - admin listing with search and pagination.
func ListManifests(c *gin.Context) {
	f := manifestFilterFromQuery(c)

	manifests, total, err := manifestService(c).List(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"manifests": manifests,
		"total":     total,
		"page":      f.Page,
		"limit":     f.Limit,
	})
}

// GET /api/manifests/export - CSV download of the filtered listing.
func ExportManifestsCSV(c *gin.Context) {
	records, err := manifestService(c).ExportCSV(manifestFilterFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build CSV export", nil)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="manifests.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// GET /api/manifests/:id/sheet - printable PDF manifest sheet.
func GetManifestSheetPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	svc := manifestService(c)
	m, err := svc.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	passengers, err := services.RegistrationService{
		RequestID: middleware.GetRequestID(c),
	}.ListPassengers(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	pdfBytes, filename, err := buildManifestSheetPDF(m, passengers)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build manifest sheet", nil)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
