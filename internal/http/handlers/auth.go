package handlers

import (
	"net/http"
	"strings"
	"time"

	"emanifest/internal/domain"
	"emanifest/internal/domain/models"
	"emanifest/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret = []byte("emanifest-dev-secret-change-me")

// SetJWTSecret installs the signing key from config at startup.
func SetJWTSecret(secret string) {
	if s := strings.TrimSpace(secret); s != "" {
		jwtSecret = []byte(s)
	}
}

// JWTSecret exposes the active signing key for the auth middleware.
func JWTSecret() []byte {
	return jwtSecret
}

func issueToken(userID int64, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/admin/login
func AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	repo := repositories.AdminRepository{}
	admin, hash, err := repo.GetByEmail(req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	tokenString, err := issueToken(admin.ID, "admin")
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString, "admin": admin})
}

type agentLoginRequest struct {
	Code string `json:"code"`
}

// POST /api/auth/agent/login - agents authenticate by their 4-char code.
func AgentLogin(c *gin.Context) {
	var req agentLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	code := strings.TrimSpace(req.Code)
	if len(code) != 4 {
		RespondError(c, http.StatusBadRequest, "agent code must be exactly 4 characters", nil)
		return
	}

	repo := repositories.AgentRepository{}
	agent, err := repo.GetByCode(code)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "invalid agent code", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	tokenString, err := issueToken(agent.ID, "agent")
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString, "agent": agent})
}

type createAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// POST /api/auth/admin - admin-only creation of reviewer accounts.
func CreateAdmin(c *gin.Context) {
	var req createAdminRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	switch {
	case !strings.Contains(req.Email, "@"):
		RespondError(c, http.StatusBadRequest, "invalid email address", nil)
		return
	case len(req.Password) < 6:
		RespondError(c, http.StatusBadRequest, "password must be at least 6 characters", nil)
		return
	case len(req.Name) < 2:
		RespondError(c, http.StatusBadRequest, "name must be at least 2 characters", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", nil)
		return
	}

	admin := models.Admin{Email: req.Email, Name: req.Name}
	repo := repositories.AdminRepository{}
	if err := repo.Create(&admin, string(hash)); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"admin": admin})
}
