package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ecorank/ecorank-server/internal/config"
	"github.com/ecorank/ecorank-server/internal/database"
	"github.com/ecorank/ecorank-server/internal/database/models"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// OIDCHandler delegates login to the configured external identity
// provider. The provider is the source of truth for the acting user's
// identity; EcoRank only stores the subject and the profile claims.
type OIDCHandler struct {
	cfg      *config.Config
	db       *gorm.DB
	oauth2   *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

func NewOIDCHandler(cfg *config.Config, db *gorm.DB) (*OIDCHandler, error) {
	provider, err := oidc.NewProvider(context.Background(), cfg.Auth.OIDC.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}

	return &OIDCHandler{
		cfg: cfg,
		db:  db,
		oauth2: &oauth2.Config{
			ClientID:     cfg.Auth.OIDC.ClientID,
			ClientSecret: cfg.Auth.OIDC.ClientSecret,
			RedirectURL:  cfg.Auth.OIDC.RedirectURI,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.Auth.OIDC.ClientID}),
	}, nil
}

func (h *OIDCHandler) Login(c *gin.Context) {
	url := h.oauth2.AuthCodeURL("state", oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *OIDCHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	token, err := h.oauth2.Exchange(context.Background(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exchange token: " + err.Error()})
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No id_token in token response"})
		return
	}

	idToken, err := h.verifier.Verify(context.Background(), rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to verify ID token: " + err.Error()})
		return
	}

	var claims struct {
		Subject           string `json:"sub"`
		Name              string `json:"name"`
		PreferredUsername string `json:"preferred_username"`
		Picture           string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode claims: " + err.Error()})
		return
	}

	user, err := database.GetUserByOIDCSubject(h.db, claims.Subject)
	if database.IsNotFound(err) {
		// first login: provision a local record for the federated identity
		subject := claims.Subject
		newUser := models.User{
			ID:          uuid.NewString(),
			OIDCSubject: &subject,
			Username:    claims.PreferredUsername,
			Nickname:    claims.Name,
			AvatarURL:   claims.Picture,
			Level:       1,
		}
		if newUser.Username == "" {
			newUser.Username = subject
		}
		if newUser.Nickname == "" {
			newUser.Nickname = newUser.Username
		}
		if err := database.CreateUser(h.db, &newUser); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user: " + err.Error()})
			return
		}
		user = &newUser
		zap.S().Infof("new user registered via OIDC: %s", user.Username)
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	jwtToken, err := GenerateJWT(user.ID, h.cfg.Auth.JWT.Secret, h.cfg.Auth.JWT.ExpireHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate JWT: " + err.Error()})
		return
	}

	if h.cfg.Auth.OIDC.FrontendCallbackURL != "" {
		c.Redirect(http.StatusTemporaryRedirect, h.cfg.Auth.OIDC.FrontendCallbackURL+"?token="+jwtToken)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": jwtToken})
}
