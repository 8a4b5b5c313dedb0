package http

import (
	"net/http"
	"time"

	"github.com/cympfh/connect-four/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type TokenHandler struct {
	APIKeyHash string
	Secret     string
	TTL        time.Duration
}

func NewTokenHandler(apiKeyHash, secret string, ttl time.Duration) *TokenHandler {
	return &TokenHandler{APIKeyHash: apiKeyHash, Secret: secret, TTL: ttl}
}

type tokenRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
	Name   string `json:"name"`
}

// Issue exchanges the configured API key for a read token on analyses.
func (h *TokenHandler) Issue(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !auth.CheckAPIKey(req.APIKey, h.APIKeyHash) {
		log.Warn().Str("component", "auth").Str("ip", c.ClientIP()).Msg("rejected api key")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
		return
	}

	subject := req.Name
	if subject == "" {
		subject = "api"
	}
	token, err := auth.GenerateAccessToken(h.Secret, subject, auth.ScopeReadAnalyses, h.TTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(h.TTL.Seconds()),
	})
}
