package handlers

import (
	"net/http"
	"strings"

	"emanifest/internal/domain/models"
	"emanifest/internal/repositories"

	"github.com/gin-gonic/gin"
)

type parkRequest struct {
	Name          string `json:"name"`
	Code          string `json:"code"`
	DefaultOrigin string `json:"defaultOrigin"`
}

func (r *parkRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.DefaultOrigin = strings.TrimSpace(r.DefaultOrigin)
	switch {
	case len(r.Name) < 2:
		return "park name must be at least 2 characters"
	case len(r.Code) < 2:
		return "park code must be at least 2 characters"
	case len(r.DefaultOrigin) < 2:
		return "default origin must be at least 2 characters"
	}
	return ""
}

// GET /api/parks
func GetParks(c *gin.Context) {
	parks, err := repositories.ParkRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parks": parks})
}

// POST /api/parks
func CreatePark(c *gin.Context) {
	var req parkRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	park := models.Park{Name: req.Name, Code: req.Code, DefaultOrigin: req.DefaultOrigin}
	if err := (repositories.ParkRepository{}).Create(&park); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"park": park})
}

// PUT /api/parks/:id
func UpdatePark(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req parkRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	park := models.Park{ID: id, Name: req.Name, Code: req.Code, DefaultOrigin: req.DefaultOrigin}
	if err := (repositories.ParkRepository{}).Update(park); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"park": park})
}

// DELETE /api/parks/:id
func DeletePark(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (repositories.ParkRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "park deleted"})
}
