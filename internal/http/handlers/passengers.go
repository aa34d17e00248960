package handlers

import (
	"net/http"

	"emanifest/internal/http/middleware"
	"emanifest/internal/services"

	"github.com/gin-gonic/gin"
)

func registrationService(c *gin.Context) services.RegistrationService {
	return services.RegistrationService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/passengers - passenger self-registration against a manifest.
// The service re-derives the authoritative seat; the unique index on
// (manifest_id, seat_number) settles concurrent attempts.
func RegisterPassenger(c *gin.Context) {
	var in services.RegisterPassengerInput
	if !BindJSONOrError(c, &in) {
		return
	}

	p, err := registrationService(c).Register(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"passenger": p})
}

// GET /api/passengers?manifestId= - roster ordered by seat number.
func GetPassengers(c *gin.Context) {
	manifestID := queryInt64(c, "manifestId")

	passengers, err := registrationService(c).ListPassengers(manifestID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"passengers": passengers})
}

type bulkRegisterRequest struct {
	ManifestID int64                             `json:"manifestId"`
	Passengers []services.RegisterPassengerInput `json:"passengers"`
}

// POST /api/passengers/bulk - sequential registration; first failure aborts
// and the response reports which passengers made it in.
func BulkRegisterPassengers(c *gin.Context) {
	var req bulkRegisterRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	res, err := registrationService(c).RegisterBulk(req.ManifestID, req.Passengers)
	if err != nil {
		status := statusForDomainError(err)
		c.JSON(status, gin.H{
			"error":      err.Error(),
			"code":       codeOr(err, "registration_failed"),
			"created":    res.Created,
			"request_id": middleware.GetRequestID(c),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": res.Created})
}
