package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"landing-cms/pkg/config"
	"landing-cms/pkg/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const apiTokenUser = "api-token"

// accessRequest identifies the caller from the bearer token or the session.
func accessRequest(c *gin.Context) models.AccessRequest {
	if token, ok := bearerToken(c); ok && config.AdminAPIToken != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(config.AdminAPIToken)) == 1 {
		return models.AccessRequest{User: apiTokenUser, Authenticated: true}
	}

	session := sessions.Default(c)
	if token, ok := session.Get("access_token").(string); ok && token != "" {
		user, _ := session.Get("user").(string)
		return models.AccessRequest{User: user, Authenticated: true}
	}
	return models.AccessRequest{}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAccess enforces the collection access rule for op.
func RequireAccess(col models.Collection, op models.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := accessRequest(c)
		if col.Access.Allows(op, req) {
			c.Next()
			return
		}
		if !req.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}

func AuthRequired(c *gin.Context) {
	if !accessRequest(c).Authenticated {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}

// gitToken returns the GitHub token of the logged in user.
func gitToken(c *gin.Context) string {
	session := sessions.Default(c)
	token, _ := session.Get("access_token").(string)
	return token
}

const oauthStateKey = "oauth_state"

func GithubLogin(c *gin.Context) {
	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		slog.Error("save session", "err", err)
		c.String(http.StatusInternalServerError, "Failed to start login")
		return
	}
	url := config.OauthConf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func AuthCallback(c *gin.Context) {
	session := sessions.Default(c)
	expected, _ := session.Get(oauthStateKey).(string)
	session.Delete(oauthStateKey)
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(c.Query("state"))) != 1 {
		_ = session.Save()
		c.String(http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	token, err := config.OauthConf.Exchange(c.Request.Context(), code)
	if err != nil {
		_ = session.Save()
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	session.Set("access_token", token.AccessToken)
	session.Set("user", "github")
	if err := session.Save(); err != nil {
		slog.Error("save session", "err", err)
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		slog.Error("save session", "err", err)
		c.String(http.StatusInternalServerError, "Failed to clear session")
		return
	}
	c.Redirect(http.StatusFound, "/")
}
