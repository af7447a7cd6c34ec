package handlers

import (
	"net/http"
	"strings"

	"reko-cms/pkg/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

func AuthRequired(c *gin.Context) {
	if accessToken(c) == "" {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		} else {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
		return
	}
	c.Next()
}

// GithubLogin starts the OAuth flow. The state value is kept in the session
// and checked on callback.
func GithubLogin(c *gin.Context) {
	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Session error")
		return
	}
	url := config.OauthConf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func AuthCallback(c *gin.Context) {
	session := sessions.Default(c)
	expected, _ := session.Get("oauth_state").(string)
	if expected == "" || c.Query("state") != expected {
		c.String(http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	session.Delete("oauth_state")

	token, err := config.OauthConf.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.Error(err)
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	session.Set("access_token", token.AccessToken)
	session.Save()

	c.Redirect(http.StatusFound, config.GetAppURL()+"/")
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
