package handlers

import (
	"net/http"
	"strings"

	"emanifest/internal/domain/models"
	"emanifest/internal/repositories"

	"github.com/gin-gonic/gin"
)

type agentRequest struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	ParkID int64  `json:"parkId"`
}

func (r *agentRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)
	switch {
	case len(r.Name) < 2:
		return "agent name must be at least 2 characters"
	case len(r.Code) != 4:
		return "agent code must be exactly 4 characters"
	case r.ParkID <= 0:
		return "park id is required"
	}
	return ""
}

// GET /api/agents
func GetAgents(c *gin.Context) {
	agents, err := repositories.AgentRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

// POST /api/agents
func CreateAgent(c *gin.Context) {
	var req agentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	// reject unknown park up front for a clearer error than the FK failure
	if _, err := (repositories.ParkRepository{}).GetByID(req.ParkID); err != nil {
		RespondDomainError(c, err)
		return
	}

	agent := models.Agent{Name: req.Name, Code: req.Code, ParkID: req.ParkID}
	if err := (repositories.AgentRepository{}).Create(&agent); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"agent": agent})
}

// PUT /api/agents/:id
func UpdateAgent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req agentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	agent := models.Agent{ID: id, Name: req.Name, Code: req.Code, ParkID: req.ParkID}
	if err := (repositories.AgentRepository{}).Update(agent); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": agent})
}

// DELETE /api/agents/:id
func DeleteAgent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (repositories.AgentRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "agent deleted"})
}
